// ABOUTME: Vital configuration: profile, units, aliases, alert thresholds,
// ABOUTME: and the storage backend factory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openvital/vital/internal/storage"
)

// Config stores vital's configuration, persisted as YAML.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "badger".
	Backend string `yaml:"backend,omitempty" json:"backend,omitempty"`

	// DataDir overrides the data directory. Supports ~ expansion.
	// Defaults to $VITAL_HOME, then ~/.vital.
	DataDir string `yaml:"data_dir,omitempty" json:"data_dir,omitempty"`

	Profile Profile           `yaml:"profile" json:"profile"`
	Units   Units             `yaml:"units" json:"units"`
	Aliases map[string]string `yaml:"aliases" json:"aliases"`
	Alerts  Alerts            `yaml:"alerts" json:"alerts"`
}

// Profile holds optional personal details used by status computations.
type Profile struct {
	HeightCm        *float64 `yaml:"height_cm,omitempty" json:"height_cm,omitempty"`
	BirthYear       *int     `yaml:"birth_year,omitempty" json:"birth_year,omitempty"`
	Gender          *string  `yaml:"gender,omitempty" json:"gender,omitempty"`
	Conditions      []string `yaml:"conditions,omitempty" json:"conditions,omitempty"`
	PrimaryExercise *string  `yaml:"primary_exercise,omitempty" json:"primary_exercise,omitempty"`
}

// Units selects the display unit system. Values are always stored metric.
type Units struct {
	System      string `yaml:"system" json:"system"`
	Weight      string `yaml:"weight" json:"weight"`
	Height      string `yaml:"height" json:"height"`
	Water       string `yaml:"water" json:"water"`
	Temperature string `yaml:"temperature" json:"temperature"`
}

// Alerts configures pain alerting in the status overview.
type Alerts struct {
	PainThreshold       int `yaml:"pain_threshold" json:"pain_threshold"`
	PainConsecutiveDays int `yaml:"pain_consecutive_days" json:"pain_consecutive_days"`
}

// MetricUnits is the default metric unit set.
func MetricUnits() Units {
	return Units{System: "metric", Weight: "kg", Height: "cm", Water: "ml", Temperature: "celsius"}
}

// ImperialUnits is the imperial unit set.
func ImperialUnits() Units {
	return Units{System: "imperial", Weight: "lbs", Height: "ft", Water: "fl_oz", Temperature: "fahrenheit"}
}

// IsImperial reports whether display conversion applies.
func (u Units) IsImperial() bool {
	return u.System == "imperial"
}

// DefaultAliases is the built-in shorthand table for metric types.
func DefaultAliases() map[string]string {
	return map[string]string{
		"w":   "weight",
		"bf":  "body_fat",
		"c":   "cardio",
		"s":   "strength",
		"sl":  "sleep_hours",
		"sq":  "sleep_quality",
		"wa":  "water",
		"p":   "pain",
		"so":  "soreness",
		"cal": "calories_in",
		"st":  "screen_time",
	}
}

// Default returns a config with baseline values.
func Default() *Config {
	return &Config{
		Units:   MetricUnits(),
		Aliases: map[string]string{},
		Alerts:  Alerts{PainThreshold: 5, PainConsecutiveDays: 3},
	}
}

// ResolveAlias maps a shorthand to its metric type, or returns the input
// unchanged when no alias matches.
func (c *Config) ResolveAlias(input string) string {
	if resolved, ok := c.Aliases[input]; ok {
		return resolved
	}
	return input
}

// DataHome returns the data directory: $VITAL_HOME if set, else ~/.vital,
// unless overridden by DataDir.
func (c *Config) DataHome() string {
	if c.DataDir != "" {
		return ExpandPath(c.DataDir)
	}
	return defaultDataHome()
}

func defaultDataHome() string {
	if home := os.Getenv("VITAL_HOME"); home != "" {
		return home
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".vital")
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Store for the configured backend.
func (c *Config) OpenStorage() (storage.Store, error) {
	dataDir := c.DataHome()
	switch c.GetBackend() {
	case "sqlite":
		return storage.Open(filepath.Join(dataDir, "data.db"))
	case "badger":
		return storage.OpenKV(filepath.Join(dataDir, "kv"))
	default:
		return nil, fmt.Errorf("unknown backend: %q (expected sqlite or badger)", c.Backend)
	}
}

// Path returns the config file location inside the data directory.
func Path() string {
	return filepath.Join(defaultDataHome(), "config.yaml")
}

// Load reads config from disk, returning defaults when absent.
func Load() (*Config, error) {
	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes config to disk with owner-only permissions.
func (c *Config) Save() error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
