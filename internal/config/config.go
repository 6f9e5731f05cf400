package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FormatConfig holds the regional normalization rules applied to raw numbers.
type FormatConfig struct {
	// TrunkPrefix is the local dialing prefix replaced on formatting (e.g. "0").
	TrunkPrefix string `yaml:"trunk_prefix"`
	// CountryPrefix replaces the trunk prefix (e.g. "549" for AR mobile).
	CountryPrefix string `yaml:"country_prefix"`
	// MobileMarker is a secondary marker dropped when it directly follows
	// the country prefix after substitution (e.g. "15").
	MobileMarker string `yaml:"mobile_marker"`
}

// Config is the application configuration loaded from validate.yaml.
type Config struct {
	// StoreDir is where per-session credential databases live.
	StoreDir string `yaml:"store_dir"`
	// ReconnectDelay is the pause before a transient reconnect attempt.
	ReconnectDelay Duration `yaml:"reconnect_delay"`
	// Format selects the regional formatting policy.
	Format FormatConfig `yaml:"format"`
	// RedisAddr enables the outcome cache when non-empty (host:port).
	RedisAddr string `yaml:"redis_addr"`
	// RedisPassword is the optional password for the cache connection.
	RedisPassword string `yaml:"redis_password"`
	// CacheTTL bounds how long a cached outcome is trusted. Zero means no expiry.
	CacheTTL Duration `yaml:"cache_ttl"`
	// MetricsAddr enables the metrics/status HTTP server when non-empty.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		StoreDir:       "sessions",
		ReconnectDelay: Duration(5 * time.Second),
		Format: FormatConfig{
			TrunkPrefix:   "0",
			CountryPrefix: "549",
			MobileMarker:  "15",
		},
	}
}

// Load reads a YAML configuration file. A missing file is not an error;
// defaults are returned so the tool works with zero setup.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = Duration(5 * time.Second)
	}
	if cfg.StoreDir == "" {
		cfg.StoreDir = "sessions"
	}

	return cfg, nil
}
