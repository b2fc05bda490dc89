package kv

import "go.uber.org/zap"

// defaultCompactionThreshold is the number of mutations (set + remove)
// written since the last compaction that triggers another compaction
// pass. Spec §6 recommends 3*1024.
const defaultCompactionThreshold = 3 * 1024

// Option configures an Engine at Open time.
type Option func(*options)

type options struct {
	compactionThreshold int
	logger              *zap.Logger
}

func defaultOptions() *options {
	return &options{
		compactionThreshold: defaultCompactionThreshold,
		logger:              zap.NewNop(),
	}
}

// WithCompactionThreshold overrides the mutation count that triggers
// compaction. A non-positive value disables automatic compaction
// (tests use this to assert on pre-compaction state).
func WithCompactionThreshold(n int) Option {
	return func(o *options) {
		o.compactionThreshold = n
	}
}

// WithLogger attaches a *zap.Logger the engine uses for structured,
// non-fatal diagnostics around hydration and compaction. A nil logger
// is treated the same as not passing the option.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
