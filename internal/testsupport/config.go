package testsupport

import (
	"path/filepath"
	"testing"

	"instatory/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.DatabasePath = filepath.Join(base, "database.sqlite3")
	cfg.Paths.UploadsDir = filepath.Join(base, "data", "images", "uploads")
	cfg.Paths.InventoryDir = filepath.Join(base, "data", "images", "inventory")
	cfg.Paths.TempDir = filepath.Join(base, "data", "temp")
	cfg.Paths.ExportsDir = filepath.Join(base, "data", "exports")
	cfg.Vision.APIKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithVisionEndpoint points the vision client at a test server.
func WithVisionEndpoint(baseURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Vision.BaseURL = baseURL
	}
}

// WithVisionAPIKey overrides the vision API key on the test config.
func WithVisionAPIKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Vision.APIKey = key
	}
}
