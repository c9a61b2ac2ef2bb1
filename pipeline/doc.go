// Package pipeline implements a staged concurrent producer/consumer
// pipeline: a sequence of stages, each backed by a dedicated goroutine
// and a one-slot inbox, connected by condition-variable handoff. Items
// fed at stage 0 flow through every stage in order; different items may
// be in flight at different stages simultaneously, but a single stage
// never runs two transforms concurrently.
//
// Stages are type-erased: every transform has signature func(any) any,
// so adjacent stages must agree on the concrete type passed between
// them. There is no static cross-stage type check.
package pipeline
