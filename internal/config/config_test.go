package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLoadFirstRunCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, *DefaultConfig(), *cfg)

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	in := &Config{
		URL:            "https://calendar.example.com/basic.ics",
		InsecureTLS:    true,
		TimeoutSeconds: 30,
		TailBytes:      100000,
		Rows:           4,
		RefreshCron:    "*/5 * * * *",
		LogLevel:       "debug",
	}
	assert.NoError(t, in.Save(path))

	out, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, *in, *out)
}

func TestNormalizeFillsZeroValues(t *testing.T) {
	cfg := &Config{URL: "https://example.com/cal.ics"}
	cfg.Normalize()

	assert.Equal(t, 15, cfg.TimeoutSeconds)
	assert.Equal(t, int64(200000), cfg.TailBytes)
	assert.Equal(t, 6, cfg.Rows)
	assert.Equal(t, "*/15 * * * *", cfg.RefreshCron)
	assert.Equal(t, "info", cfg.LogLevel)

	// URL is deliberately never defaulted: an empty one means unconfigured.
	assert.Equal(t, "https://example.com/cal.ics", cfg.URL)
}

func TestLoadRejectsEmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("url: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
