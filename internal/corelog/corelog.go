// Package corelog is the structured-logging seam shared by the pipeline
// and worker pool. Like internal/rebalancing.Clock in the teacher repo
// (an interface injected so tests can control time deterministically),
// a *zerolog.Logger is injected so tests can assert on emitted events and
// callers can wire the library into their own logging pipeline; the
// package-level default discards everything.
package corelog

import (
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(io.Discard)
	defaultLogger.Store(&l)
}

// SetDefault replaces the package-level logger used by components that were
// not constructed with an explicit logger option.
func SetDefault(l zerolog.Logger) {
	defaultLogger.Store(&l)
}

// Default returns the current package-level logger.
func Default() zerolog.Logger {
	return *defaultLogger.Load()
}
