package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/config"
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
	cfgVal.Paths.StagingDir = filepath.Join(base, "staging")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	return builder.cfg
}

// WithUploadEndpoint points the test config at an upload endpoint.
func WithUploadEndpoint(endpoint string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Upload.Endpoint = endpoint
	}
}

// WithRenderDefaults overrides the configured render resolution and quality.
func WithRenderDefaults(resolution, quality string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Render.Resolution = resolution
		b.cfg.Render.Quality = quality
	}
}

// WithStubbedFFmpeg writes a stub ffmpeg executable into the test's temp
// directory and points the config at it. The stub creates its output file,
// which ffmpeg receives as the final argument, so render paths complete.
func WithStubbedFFmpeg() ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := "#!/bin/sh\nfor arg in \"$@\"; do last=\"$arg\"; done\necho video > \"$last\"\nexit 0\n"
		target := filepath.Join(binDir, "ffmpeg")
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write stub ffmpeg: %v", err)
		}
		b.cfg.FFmpeg.Binary = target
	}
}
