package testsupport

import (
	"path/filepath"
	"testing"

	"napi/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DestDir = filepath.Join(base, "subs")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.HistoryDir = filepath.Join(base, "history")
	cfg.Downloads.Workers = 2

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return &cfg
}

// WithLanguage sets the subtitle language on the test config.
func WithLanguage(lang string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Downloads.Language = lang
	}
}

// WithHistoryDisabled turns the download journal off.
func WithHistoryDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.History.Enabled = false
	}
}
