package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "HOVERLINE_"

// LoadFile reads a configuration file, overlaying it on the defaults.
// The format is chosen by extension: .yaml/.yml or .toml.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("config: unsupported format %q", filepath.Ext(path))
	}

	ApplyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Load returns the configuration from path when non-empty, otherwise the
// defaults with environment overrides applied.
func Load(path string) (Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	cfg := Default()
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overlays HOVERLINE_-prefixed environment variables onto cfg.
// Unparseable values are ignored; the previous value stands.
func ApplyEnv(cfg *Config) {
	if v, ok := envFloat("BOUNDARY_THRESHOLD"); ok {
		cfg.Table.BoundaryThreshold = v
	}
	if v, ok := envDuration("THROTTLE_INTERVAL"); ok {
		cfg.Table.ThrottleInterval = Duration(v)
	}
	if v, ok := envDuration("HIDE_DELAY"); ok {
		cfg.Table.HideDelay = Duration(v)
	}
	if v, ok := envDuration("POPUP_DEBOUNCE"); ok {
		cfg.Popup.Debounce = Duration(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "POPUP_TRIGGERS"); ok && v != "" {
		cfg.Popup.Triggers = v
	}
	if v, ok := envFloat("POPUP_OFFSET"); ok {
		cfg.Popup.Offset = v
	}
	if v, ok := envInt("POPUP_TEXT_WINDOW"); ok {
		cfg.Popup.TextWindow = v
	}
}

func envFloat(name string) (float64, bool) {
	s, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envInt(name string) (int, bool) {
	s, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envDuration(name string) (time.Duration, bool) {
	s, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return 0, false
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
