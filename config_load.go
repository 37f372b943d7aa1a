package itemfetch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads and parses a config file from the given path.
// Supported formats: JSON (.json), YAML (.yaml, .yml).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q: use .json, .yaml, or .yml", ext)
	}

	return &cfg, nil
}

// ValidateConfig validates a Config for correctness.
func ValidateConfig(cfg Config) error {
	if cfg.BasePath == "" {
		return fmt.Errorf("base_path is required")
	}
	if cfg.RetryCount < 1 {
		return fmt.Errorf("retry_count must be at least 1, got %d", cfg.RetryCount)
	}
	if _, err := parseDuration(cfg.Timeout, DefaultTimeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	if cfg.Cache.Enabled {
		if _, err := parseDuration(cfg.Cache.TTL, DefaultCacheTTL); err != nil {
			return fmt.Errorf("cache ttl: %w", err)
		}
	}
	if cfg.Breaker != nil {
		if cfg.Breaker.FailureThreshold < 1 {
			return fmt.Errorf("breaker failure_threshold must be at least 1, got %d", cfg.Breaker.FailureThreshold)
		}
		if _, err := parseDuration(cfg.Breaker.Cooldown, 0); err != nil {
			return fmt.Errorf("breaker cooldown: %w", err)
		}
	}
	if cfg.FetchLog != nil {
		switch cfg.FetchLog.Driver {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("unknown fetch_log driver %q: use sqlite or postgres", cfg.FetchLog.Driver)
		}
	}
	return nil
}

// parseDuration parses s, falling back to def when s is empty. Parsed
// durations must be positive.
func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}
