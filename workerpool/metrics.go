package workerpool

import "github.com/prometheus/client_golang/prometheus"

// metrics is a prometheus.Collector exposing a pool's active-thread
// count and backlog depth. As with pipeline.metrics, a Pool is not
// auto-registered; callers scrape it by registering Pool.Metrics() with
// their own registerer.
type metrics struct {
	active  prometheus.Gauge
	backlog prometheus.Gauge
	ran     prometheus.Counter
}

func newMetrics(name string) *metrics {
	return &metrics{
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "corelib",
			Subsystem:   "workerpool",
			Name:        "active_workers",
			Help:        "Number of worker goroutines currently running.",
			ConstLabels: prometheus.Labels{"pool": name},
		}),
		backlog: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "corelib",
			Subsystem:   "workerpool",
			Name:        "backlog_depth",
			Help:        "Number of tasks waiting in the FIFO backlog.",
			ConstLabels: prometheus.Labels{"pool": name},
		}),
		ran: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "corelib",
			Subsystem:   "workerpool",
			Name:        "tasks_run_total",
			Help:        "Count of tasks that have finished running, successfully or not.",
			ConstLabels: prometheus.Labels{"pool": name},
		}),
	}
}

// Describe implements prometheus.Collector.
func (m *metrics) Describe(ch chan<- *prometheus.Desc) {
	m.active.Describe(ch)
	m.backlog.Describe(ch)
	m.ran.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *metrics) Collect(ch chan<- prometheus.Metric) {
	m.active.Collect(ch)
	m.backlog.Collect(ch)
	m.ran.Collect(ch)
}
