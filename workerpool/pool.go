package workerpool

import (
	"reflect"
	"runtime"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/scigolib/corelib/internal/corelog"
)

// Task is a nullary unit of work submitted to a Pool.
type Task func()

// Option configures a Pool during construction.
type Option func(*Pool)

// WithLogger sets the logger used for worker lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pool) { p.log = l }
}

// WithName sets the pool's name, used only as a metrics label.
func WithName(name string) Option {
	return func(p *Pool) { p.name = name }
}

// Pool is a bounded set of worker goroutines draining a shared FIFO
// backlog. Submit either spawns a new worker as a seed task, or appends
// to the backlog if maxThreads workers are already active.
type Pool struct {
	maxThreads int
	name       string
	log        zerolog.Logger

	mu      sync.Mutex
	active  int
	backlog []Task

	wg sync.WaitGroup

	metrics *metrics
}

// New creates a pool bounded to maxThreads concurrently active worker
// goroutines. A non-positive maxThreads is treated as
// runtime.NumCPU().
func New(maxThreads int, opts ...Option) *Pool {
	if maxThreads <= 0 {
		maxThreads = runtime.NumCPU()
	}
	p := &Pool{maxThreads: maxThreads, log: corelog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.name == "" {
		p.name = "default"
	}
	p.metrics = newMetrics(p.name)
	return p
}

var (
	defaultOnce sync.Once
	defaultPool *Pool
)

// Default returns the process-global pool, lazily initialized with
// runtime.NumCPU() worker threads on first use.
func Default() *Pool {
	defaultOnce.Do(func() {
		defaultPool = New(runtime.NumCPU(), WithName("global"))
	})
	return defaultPool
}

// Metrics returns the pool's prometheus.Collector, for callers that want
// to register it with their own registry.
func (p *Pool) Metrics() prometheus.Collector { return p.metrics }

// Submit enqueues task. If fewer than maxThreads workers are currently
// active, task becomes the seed of a newly spawned worker; otherwise it
// is appended to the backlog for an already-running worker to pick up.
func (p *Pool) Submit(task Task) {
	p.mu.Lock()
	if p.active < p.maxThreads {
		p.active++
		p.metrics.active.Set(float64(p.active))
		p.mu.Unlock()

		p.wg.Add(1)
		go p.runWorker(task)
		return
	}

	p.backlog = append(p.backlog, task)
	p.metrics.backlog.Set(float64(len(p.backlog)))
	p.mu.Unlock()
}

// Bind returns a Task that calls fn with args bound, via reflection —
// the Go analogue of binding a method pointer and receiver into a
// nullary callable. fn must be a func value; its parameter types must
// match args.
func Bind(fn any, args ...any) Task {
	fv := reflect.ValueOf(fn)
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		in[i] = reflect.ValueOf(a)
	}
	return func() {
		fv.Call(in)
	}
}

// runWorker runs seed to completion, then repeatedly drains the backlog
// until it is empty, at which point the worker decrements the active
// count and exits.
func (p *Pool) runWorker(seed Task) {
	defer p.wg.Done()
	task := seed
	for {
		p.runTask(task)

		p.mu.Lock()
		if len(p.backlog) == 0 {
			p.active--
			p.metrics.active.Set(float64(p.active))
			p.mu.Unlock()
			return
		}
		task = p.backlog[0]
		p.backlog = p.backlog[1:]
		p.metrics.backlog.Set(float64(len(p.backlog)))
		p.mu.Unlock()
	}
}

// runTask executes task, recovering a panic so that a failing task
// neither leaks the worker goroutine nor affects any other task. The
// policy for reporting such failures belongs to the caller; runTask only
// logs and moves on.
func (p *Pool) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Str("pool", p.name).Msg("task panicked")
		}
		p.metrics.ran.Inc()
	}()
	task()
}

// JoinAll blocks until every spawned worker has finished, including any
// spawned after JoinAll was called but before all backlogs drained.
func (p *Pool) JoinAll() {
	p.wg.Wait()
}

// Active returns the current active-worker count, for diagnostics.
func (p *Pool) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}
