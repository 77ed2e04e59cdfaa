// Package log provides a thin global wrapper around zap.Logger so
// cmd/covmerge's command handlers can log without threading a logger
// through every function signature. The merge algorithm itself
// (internal/mergecov, internal/rangetree, internal/eventqueue) never
// imports this package — it is pure and silent, as spec.md requires.
package log

import "go.uber.org/zap"

var logger *zap.Logger = zap.NewNop()

// Set installs the process-wide logger. A nil logger installs a no-op
// logger instead of panicking later.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Get returns the process-wide logger, zap.NewNop() if none was set.
func Get() *zap.Logger { return logger }
