package facecam

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigNeedsCredentials(t *testing.T) {

	err := DefaultConfig().Validate()

	if err == nil {
		t.Fatal("expected error without endpoint and key")
	}

	if !strings.Contains(err.Error(), "APIKey") || !strings.Contains(err.Error(), "Endpoint") {
		t.Errorf("expected endpoint and key failures, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {

	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"largest", func(c *Config) { c.Selection = "largest" }, true},
		{"bad selection", func(c *Config) { c.Selection = "smallest" }, false},
		{"short interval", func(c *Config) { c.Interval = 10 * time.Millisecond }, false},
		{"bad endpoint", func(c *Config) { c.Endpoint = "not a url" }, false},
		{"bad font", func(c *Config) { c.FontMode = "comic" }, false},
		{"quality", func(c *Config) { c.JPEGQuality = 101 }, false},
		{"negative core", func(c *Config) { c.CPUCores = []int{1, -2} }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {

			cfg := DefaultConfig()
			cfg.Endpoint = "https://westus.api.cognitive.microsoft.com/"
			cfg.APIKey = "key"
			tc.modify(&cfg)

			err := cfg.Validate()

			if tc.valid && err != nil {
				t.Errorf("expected valid config, got %v", err)
			}

			if !tc.valid && err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")

	content := "FACE_API_ENDPOINT=https://example.com\nFACE_API_KEY=from-file\n"

	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	// variables already set take precedence over the file
	t.Setenv(EnvAPIKey, "from-env")
	t.Setenv(EnvInterval, "2s")
	t.Setenv(EnvDevice, "/dev/video2")
	t.Setenv(EnvEndpoint, "")

	cfg := DefaultConfig()

	if err := cfg.LoadEnv(envFile); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}

	if cfg.APIKey != "from-env" {
		t.Errorf("expected key from environment, got %s", cfg.APIKey)
	}

	if cfg.Interval != 2*time.Second || cfg.DeviceID != "/dev/video2" {
		t.Errorf("unexpected overlay: %+v", cfg)
	}

	if err := cfg.LoadEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("expected missing env file to be ignored, got %v", err)
	}
}

func TestLoadEnvBadInterval(t *testing.T) {

	t.Setenv(EnvInterval, "soon")

	cfg := DefaultConfig()

	if err := cfg.LoadEnv(filepath.Join(t.TempDir(), "none.env")); err == nil {
		t.Errorf("expected error for invalid interval")
	}
}
