package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SourceConfig holds the configuration for a single ERP backend instance.
// API credentials are not stored here; they live in the system keyring
// keyed by the source id.
type SourceConfig struct {
	// ID is the unique identifier for this source instance.
	ID string `mapstructure:"id" yaml:"id"`

	// Name is the user-defined label for this source instance.
	Name string `mapstructure:"name" yaml:"name"`

	// BaseURL is the root URL of the ERP instance.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// DefaultProject is the project opened on startup, if set.
	DefaultProject string `mapstructure:"default_project" yaml:"default_project"`

	// Enabled controls whether this source is actively refreshed.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// PollIntervalSec is how often (in seconds) to refresh the open project.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

// DisplayConfig holds chart rendering preferences.
type DisplayConfig struct {
	// Theme selects the color theme.
	Theme string `mapstructure:"theme" yaml:"theme"`

	// DefaultZoom is the zoom level on startup: "day", "week", or "month".
	DefaultZoom string `mapstructure:"default_zoom" yaml:"default_zoom"`

	// CellsPerUnit is how many terminal cells one zoom unit occupies.
	CellsPerUnit int `mapstructure:"cells_per_unit" yaml:"cells_per_unit"`

	// RowHeight is the height of one chart row in terminal cells.
	RowHeight int `mapstructure:"row_height" yaml:"row_height"`

	// RowGap is extra spacing between chart rows in terminal cells.
	RowGap int `mapstructure:"row_gap" yaml:"row_gap"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Sources []SourceConfig `mapstructure:"sources" yaml:"sources"`
	Display DisplayConfig  `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/ganttboard/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "ganttboard", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Sources: []SourceConfig{},
		Display: DisplayConfig{
			Theme:        "default",
			DefaultZoom:  "week",
			CellsPerUnit: 8,
			RowHeight:    1,
			RowGap:       0,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.default_zoom", "week")
	v.SetDefault("display.cells_per_unit", 8)
	v.SetDefault("display.row_height", 1)
	v.SetDefault("display.row_gap", 0)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Apply defaults for each source entry.
	for i := range cfg.Sources {
		if cfg.Sources[i].PollIntervalSec == 0 {
			cfg.Sources[i].PollIntervalSec = 120
		}
		if !cfg.Sources[i].Enabled {
			// Viper unmarshals missing bools as false; treat unset as true.
			// We use the raw viper value to distinguish explicit false from absent.
			key := fmt.Sprintf("sources.%d.enabled", i)
			if !v.IsSet(key) {
				cfg.Sources[i].Enabled = true
			}
		}
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("sources", cfg.Sources)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
