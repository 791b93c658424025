// SPDX-License-Identifier: MPL-2.0

package config

// UIConfig holds presentation preferences.
type UIConfig struct {
	// Verbose enables debug-level diagnostics by default.
	Verbose bool `mapstructure:"verbose"`
	// Quiet suppresses everything but errors by default.
	Quiet bool `mapstructure:"quiet"`
	// ColorScheme selects the glamour style used for rendered issue help:
	// "auto", "dark", "light", or "notty".
	ColorScheme string `mapstructure:"color_scheme"`
}

// Config is the decoded application configuration.
type Config struct {
	// PreserveCase keeps lump name case on both sinks by default.
	PreserveCase bool `mapstructure:"preserve_case"`
	// Namespaces buckets directory output by namespace by default.
	Namespaces bool `mapstructure:"namespaces"`
	// LumpsOnly limits directory output to actual lumps by default.
	LumpsOnly bool `mapstructure:"lumps_only"`
	// UI holds presentation preferences.
	UI UIConfig `mapstructure:"ui"`
	// Groups are the named lump groups the change engine expands. Members
	// may be change tokens or further group names.
	Groups map[string][]string `mapstructure:"groups"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		UI:     UIConfig{ColorScheme: "auto"},
		Groups: map[string][]string{},
	}
}
