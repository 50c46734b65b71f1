package testsupport

import (
	"path/filepath"
	"testing"

	"dynoctl/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with a unique temp history directory
// per test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Connection.DefaultHost = "localhost"
	cfgVal.Connection.ConnectTimeout = 2
	cfgVal.History.Dir = filepath.Join(base, "history")
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{t: t, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDefaultHost sets the fallback daemon host on the test config.
func WithDefaultHost(host string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Connection.DefaultHost = host
	}
}

// WithRequestTimeout bounds request round trips on the test config, in seconds.
func WithRequestTimeout(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Connection.RequestTimeout = seconds
	}
}

// WithBatchConcurrency caps batch fan-out on the test config.
func WithBatchConcurrency(limit int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Batch.Concurrency = limit
	}
}

// WithHistoryDisabled turns off the command history ledger.
func WithHistoryDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}
