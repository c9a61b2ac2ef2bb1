package pipeline

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/scigolib/corelib/internal/corelog"
)

// Option configures a Pipeline during construction.
type Option func(*Pipeline)

// WithLogger sets the logger used for stage lifecycle events. The
// default is internal/corelog's package-level default, which discards
// output until a caller injects one.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithName sets the pipeline's name, used only as a metrics label.
func WithName(name string) Option {
	return func(p *Pipeline) { p.name = name }
}

// Pipeline is a staged concurrent producer/consumer chain. Stages are
// appended with AddStage; feeding starts flowing items through them
// immediately. Pipeline is internally concurrent — unlike ordermap.Tree
// and quadtree.Tree, callers do not need to externally serialize calls
// to Feed, AddStage, WaitEnd, or Stop.
type Pipeline struct {
	name string
	log  zerolog.Logger

	stagesMu sync.RWMutex
	stages   []*stage
	wg       sync.WaitGroup

	waitMu   sync.Mutex
	waitCond *sync.Cond
	waiting  []any

	continueFlag atomic.Bool
	inFlight     atomic.Int64

	endMu   sync.Mutex
	endCond *sync.Cond

	metrics *metrics
}

// New creates an empty pipeline, ready to accept stages via AddStage.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{log: corelog.Default()}
	p.waitCond = sync.NewCond(&p.waitMu)
	p.endCond = sync.NewCond(&p.endMu)
	p.continueFlag.Store(true)
	for _, opt := range opts {
		opt(p)
	}
	if p.name == "" {
		p.name = "default"
	}
	p.metrics = newMetrics(p.name)
	return p
}

// Metrics returns the pipeline's prometheus.Collector, for callers that
// want to register it with their own registry.
func (p *Pipeline) Metrics() prometheus.Collector { return p.metrics }

// AddStage appends a new stage backed by transform, and starts its
// dedicated worker goroutine. Stages may be added before or during
// feeding.
func (p *Pipeline) AddStage(transform StageFunc) {
	p.stagesMu.Lock()
	idx := len(p.stages)
	s := newStage(idx, transform, &p.continueFlag)
	p.stages = append(p.stages, s)
	p.stagesMu.Unlock()

	p.metrics.stages.Set(float64(idx + 1))

	p.wg.Add(1)
	go p.runStage(s)
}

func (p *Pipeline) stageCount() int {
	p.stagesMu.RLock()
	defer p.stagesMu.RUnlock()
	return len(p.stages)
}

func (p *Pipeline) stageAt(i int) *stage {
	p.stagesMu.RLock()
	defer p.stagesMu.RUnlock()
	if i < 0 || i >= len(p.stages) {
		return nil
	}
	return p.stages[i]
}

// Feed enqueues input for stage 0 and increments the in-flight counter.
// Feed returns false without enqueueing if the pipeline has already
// begun stopping.
func (p *Pipeline) Feed(input any) bool {
	if !p.continueFlag.Load() {
		return false
	}
	p.inFlight.Add(1)
	p.metrics.inFlight.Set(float64(p.inFlight.Load()))

	p.waitMu.Lock()
	p.waiting = append(p.waiting, input)
	p.waitMu.Unlock()
	p.waitCond.Signal()
	return true
}

// runStage is the dedicated worker loop for one stage: wait for input
// (the waiting list for stage 0, the stage's own inbox otherwise), run
// the transform outside any lock, hand the result to the next stage or
// retire the job if this is the last stage.
func (p *Pipeline) runStage(s *stage) {
	defer p.wg.Done()
	label := strconv.Itoa(s.index)

	for {
		val, ok := p.take(s)
		if !ok {
			p.log.Debug().Str("pipeline", p.name).Int("stage", s.index).Msg("stage stopping")
			return
		}

		out := s.transform(val)
		p.metrics.processed.WithLabelValues(label).Inc()

		next := p.stageAt(s.index + 1)
		if next != nil {
			next.deliver(out)
			continue
		}

		p.inFlight.Add(-1)
		p.metrics.inFlight.Set(float64(p.inFlight.Load()))
		p.endMu.Lock()
		p.endCond.Broadcast()
		p.endMu.Unlock()
	}
}

// take blocks until s has work or the pipeline is stopping, returning
// ok=false in the latter case. For stages past the first it also wakes
// any upstream worker blocked in deliver waiting for this slot to empty,
// completing the bounded-buffer-of-one handoff.
func (p *Pipeline) take(s *stage) (any, bool) {
	if s.index == 0 {
		p.waitMu.Lock()
		defer p.waitMu.Unlock()
		for len(p.waiting) == 0 && p.continueFlag.Load() {
			p.waitCond.Wait()
		}
		if len(p.waiting) == 0 {
			return nil, false
		}
		val := p.waiting[0]
		p.waiting = p.waiting[1:]
		return val, true
	}

	s.mu.Lock()
	for !s.hasValue && p.continueFlag.Load() {
		s.cond.Wait()
	}
	if !s.hasValue {
		s.mu.Unlock()
		return nil, false
	}
	val := s.value
	s.value = nil
	s.hasValue = false
	s.mu.Unlock()
	s.cond.Broadcast()
	return val, true
}

// WaitEnd blocks until quiescence — the in-flight counter reaches zero —
// then stops the pipeline and joins every stage worker.
func (p *Pipeline) WaitEnd() {
	p.endMu.Lock()
	for p.inFlight.Load() != 0 {
		p.endCond.Wait()
	}
	p.endMu.Unlock()
	p.Stop()
}

// Stop clears the continue flag, wakes every waiting worker, and joins
// them all. Stop is idempotent: calling it more than once, or after
// WaitEnd, is safe.
func (p *Pipeline) Stop() {
	if !p.continueFlag.CompareAndSwap(true, false) {
		p.wg.Wait()
		return
	}

	p.waitMu.Lock()
	p.waitCond.Broadcast()
	p.waitMu.Unlock()

	for i := 0; i < p.stageCount(); i++ {
		s := p.stageAt(i)
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	}

	p.wg.Wait()
}

// InFlight returns the current in-flight job count, for diagnostics.
func (p *Pipeline) InFlight() int64 { return p.inFlight.Load() }
