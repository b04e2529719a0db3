// Package config holds the tuning knobs for the overlay subsystems:
// boundary thresholds, rate-limiting windows, and popup trigger settings.
//
// Configuration is loaded from a YAML or TOML file chosen by extension,
// overridden by HOVERLINE_-prefixed environment variables, and can be
// watched for live reload.
package config
