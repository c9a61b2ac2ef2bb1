// Package workerpool implements a process-global bounded pool of
// goroutines draining a shared FIFO backlog. Submitting a task either
// spawns a new worker (if fewer than the configured maximum are active)
// or appends the task to the backlog for an existing worker to pick up
// once it finishes its current task.
//
// Unlike ordermap and quadtree, Pool is internally concurrent: Submit and
// JoinAll may be called from multiple goroutines without external
// synchronization.
package workerpool
