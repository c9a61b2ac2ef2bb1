package pipeline

import "github.com/prometheus/client_golang/prometheus"

// metrics is a prometheus.Collector exposing a pipeline's in-flight job
// count and per-stage processed-item totals. Pipelines are not
// registered with any global registry automatically; callers that want
// to scrape a Pipeline register it explicitly with their own registerer,
// mirroring the teacher's preference for explicit, injectable
// collaborators over ambient globals.
type metrics struct {
	inFlight  prometheus.Gauge
	processed *prometheus.CounterVec
	stages    prometheus.Gauge
}

func newMetrics(name string) *metrics {
	return &metrics{
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "corelib",
			Subsystem: "pipeline",
			Name:      "in_flight",
			Help:      "Number of items fed but not yet past the final stage.",
			ConstLabels: prometheus.Labels{
				"pipeline": name,
			},
		}),
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corelib",
			Subsystem: "pipeline",
			Name:      "stage_processed_total",
			Help:      "Count of items a stage has finished transforming.",
			ConstLabels: prometheus.Labels{
				"pipeline": name,
			},
		}, []string{"stage"}),
		stages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "corelib",
			Subsystem: "pipeline",
			Name:      "stage_count",
			Help:      "Number of stages currently attached to the pipeline.",
			ConstLabels: prometheus.Labels{
				"pipeline": name,
			},
		}),
	}
}

// Describe implements prometheus.Collector.
func (m *metrics) Describe(ch chan<- *prometheus.Desc) {
	m.inFlight.Describe(ch)
	m.processed.Describe(ch)
	m.stages.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *metrics) Collect(ch chan<- prometheus.Metric) {
	m.inFlight.Collect(ch)
	m.processed.Collect(ch)
	m.stages.Collect(ch)
}
