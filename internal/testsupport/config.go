package testsupport

import (
	"path/filepath"
	"testing"

	"podpull/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DBPath = filepath.Join(base, "podcasts.db")
	cfgVal.Paths.AudioCacheDir = filepath.Join(base, "audio")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.FeedsFile = filepath.Join(base, "feeds.toml")
	cfgVal.Digest.OutputDir = filepath.Join(base, "digest")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithWhisperModel overrides the transcription model on the test config.
func WithWhisperModel(model string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Whisper.Model = model
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DBPath)
}
