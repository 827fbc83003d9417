package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// URL is the ICS subscription endpoint. The application treats it as
	// an opaque string; nothing else in the config shapes the core.
	URL string `yaml:"url"`

	// InsecureTLS skips TLS certificate verification when fetching the
	// calendar.
	InsecureTLS bool `yaml:"insecure_tls"`

	// TimeoutSeconds bounds a single calendar transfer.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// TailBytes is how much of the end of the calendar the first
	// (byte-range) request asks for.
	TailBytes int64 `yaml:"tail_bytes"`

	// Rows is how many agenda rows the display shows per refresh.
	Rows int `yaml:"rows"`

	// RefreshCron is a cron-style schedule string (e.g. "*/15 * * * *")
	// for periodic refresh.
	RefreshCron string `yaml:"refresh"`

	// LogLevel is one of "debug", "info", "error".
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		URL:            "",
		InsecureTLS:    false,
		TimeoutSeconds: 15,
		TailBytes:      200000,
		Rows:           6,
		RefreshCron:    "*/15 * * * *",
		LogLevel:       "info",
	}
}

// Normalize fills in missing/zero values with defaults so partially-filled
// configs (e.g. from older versions) still behave correctly.
func (c *Config) Normalize() {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 15
	}
	if c.TailBytes <= 0 {
		c.TailBytes = 200000
	}
	if c.Rows <= 0 {
		c.Rows = 6
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "*/15 * * * *"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written there
//     (parent directory created, 0600 perms) and returned.
//   - If the file exists, it is unmarshalled and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create a default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Return cfg with the error so the caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration to path atomically (temp file + rename in
// the same directory), with 0700 on the parent and 0600 on the file. The
// file mode matters because the URL usually embeds a private token.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".epdtoday-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save is a convenience method that delegates to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
