package pipeline

import (
	"sync"
	"sync/atomic"
)

// StageFunc transforms a single item as it passes through a stage. The
// final stage's StageFunc may return nil when the pipeline has no
// meaningful output (a void-typed final stage, per spec).
type StageFunc func(input any) any

// stage is one pipeline slot: a dedicated worker, a bounded-buffer-of-one
// inbox guarded by its own mutex, and a condition variable signaled
// whenever the inbox is filled, the inbox is emptied, or the pipeline is
// stopping. Both producer (deliver) and consumer (Pipeline.take) wait on
// the same condition variable for complementary predicates, so each must
// wake on Broadcast and recheck its own predicate rather than assume a
// Signal was meant for it.
type stage struct {
	index     int
	transform StageFunc

	mu           sync.Mutex
	cond         *sync.Cond
	hasValue     bool
	value        any
	continueFlag *atomic.Bool
}

func newStage(index int, transform StageFunc, continueFlag *atomic.Bool) *stage {
	s := &stage{index: index, transform: transform, continueFlag: continueFlag}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// deliver writes value into the stage's inbox, enforcing the
// bounded-buffer-of-one invariant: it blocks until the inbox is empty
// (i.e. this stage's worker has taken the previous value) before
// writing, rather than overwriting an un-taken datum. If the pipeline
// starts stopping while deliver is waiting, the value is dropped and
// deliver returns without writing — the stage is on its way out anyway.
// The caller must not hold s.mu.
func (s *stage) deliver(value any) {
	s.mu.Lock()
	for s.hasValue && s.continueFlag.Load() {
		s.cond.Wait()
	}
	if !s.continueFlag.Load() {
		s.mu.Unlock()
		return
	}
	s.value = value
	s.hasValue = true
	s.mu.Unlock()
	s.cond.Broadcast()
}
