package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultBoundaryThreshold = 8.0
	DefaultThrottleInterval  = 20 * time.Millisecond
	DefaultHideDelay         = 200 * time.Millisecond
	DefaultPopupDebounce     = 200 * time.Millisecond
	DefaultTriggers          = "/"
	DefaultTextWindow        = 500
	DefaultPopupOffset       = 4.0
)

// Duration wraps time.Duration with YAML/TOML text parsing ("20ms", "1s").
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalText parses a duration string. Used by the TOML decoder.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText renders the duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalYAML parses a duration string from a YAML scalar.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("config: duration must be a string: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML renders the duration string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// TableConfig tunes the table-handle tracker.
type TableConfig struct {
	// BoundaryThreshold is the pixel distance from a cell edge at which
	// the tracker switches to boundary mode.
	BoundaryThreshold float64 `yaml:"boundaryThreshold" toml:"boundaryThreshold"`

	// ThrottleInterval is the pointer-move throttle window.
	ThrottleInterval Duration `yaml:"throttleInterval" toml:"throttleInterval"`

	// HideDelay is the grace period before pointer-leave hides indicators.
	HideDelay Duration `yaml:"hideDelay" toml:"hideDelay"`
}

// PopupConfig tunes the popup provider.
type PopupConfig struct {
	// Debounce is the quiet period before an update is evaluated.
	Debounce Duration `yaml:"debounce" toml:"debounce"`

	// Triggers is the set of characters that activate the popup.
	Triggers string `yaml:"triggers" toml:"triggers"`

	// Offset is the pixel gap between anchor and popup.
	Offset float64 `yaml:"offset" toml:"offset"`

	// TextWindow is the maximum trailing-text length inspected for a
	// trigger character.
	TextWindow int `yaml:"textWindow" toml:"textWindow"`
}

// Config is the full tuning configuration.
type Config struct {
	Table TableConfig `yaml:"table" toml:"table"`
	Popup PopupConfig `yaml:"popup" toml:"popup"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Table: TableConfig{
			BoundaryThreshold: DefaultBoundaryThreshold,
			ThrottleInterval:  Duration(DefaultThrottleInterval),
			HideDelay:         Duration(DefaultHideDelay),
		},
		Popup: PopupConfig{
			Debounce:   Duration(DefaultPopupDebounce),
			Triggers:   DefaultTriggers,
			Offset:     DefaultPopupOffset,
			TextWindow: DefaultTextWindow,
		},
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	var errs []error
	if c.Table.BoundaryThreshold <= 0 {
		errs = append(errs, fmt.Errorf("table.boundaryThreshold must be positive, got %v", c.Table.BoundaryThreshold))
	}
	if c.Table.ThrottleInterval <= 0 {
		errs = append(errs, fmt.Errorf("table.throttleInterval must be positive, got %v", c.Table.ThrottleInterval.Std()))
	}
	if c.Table.HideDelay < 0 {
		errs = append(errs, fmt.Errorf("table.hideDelay must not be negative, got %v", c.Table.HideDelay.Std()))
	}
	if c.Popup.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("popup.debounce must be positive, got %v", c.Popup.Debounce.Std()))
	}
	if c.Popup.Triggers == "" {
		errs = append(errs, errors.New("popup.triggers must not be empty"))
	}
	if c.Popup.TextWindow <= 0 {
		errs = append(errs, fmt.Errorf("popup.textWindow must be positive, got %d", c.Popup.TextWindow))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
