// Package ordermap implements a self-balancing ordered key/value map: an
// AVL-style binary search tree with unique keys, O(log n) insert/at/erase,
// and lazy forward/reverse in-order iteration.
//
// Keys are ordered by a caller-supplied strict weak ordering (New uses the
// natural order of a cmp.Ordered key; NewFunc takes an explicit less
// function for any key type). The tree is not internally synchronized —
// callers mutating a shared *Tree from multiple goroutines must serialize
// access themselves, per the package's concurrency model (spec §5).
package ordermap
