// Package config provides Viper-based configuration management for storagecast
package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // explicit zones must resolve on hosts without zoneinfo

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast"
)

// Config represents the complete storagecast configuration
type Config struct {
	AccountID    int64         `mapstructure:"account_id"`
	APIKey       string        `mapstructure:"api_key"`
	Endpoint     string        `mapstructure:"endpoint"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Queries      QueriesConfig `mapstructure:"queries"`
	Fields       FieldsConfig  `mapstructure:"fields"`
	Timezone     string        `mapstructure:"timezone"`
	Locale       string        `mapstructure:"locale"`
	LabelLayout  string        `mapstructure:"label_layout"`
	AnchorPolicy string        `mapstructure:"anchor_policy"`
	Output       OutputConfig  `mapstructure:"output"`
	Logging      LoggingConfig `mapstructure:"logging"`
}

// QueriesConfig holds the three NRQL queries
type QueriesConfig struct {
	Total      string `mapstructure:"total"`
	Used       string `mapstructure:"used"`
	Prediction string `mapstructure:"prediction"`
}

// FieldsConfig names the metric field read from each result set
type FieldsConfig struct {
	Total      string `mapstructure:"total"`
	Used       string `mapstructure:"used"`
	Prediction string `mapstructure:"prediction"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
	Pretty bool   `mapstructure:"pretty"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Colors bool   `mapstructure:"colors"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Output formats
const (
	FormatJSON  = "json"
	FormatTable = "table"
	FormatXLSX  = "xlsx"
	FormatPNG   = "png"
	// FormatProjection is JSON with the anchor and dropped-sample diagnostics.
	FormatProjection = "projection"
)

// Load reads configuration from file and environment variables.
// Overrides (typically command-line flags) take precedence over both.
func Load(cfgFile string, overrides map[string]interface{}) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".storagecast")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/storagecast")
	}

	// STORAGECAST_QUERIES_TOTAL overrides queries.total
	v.SetEnvPrefix("STORAGECAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", "https://api.newrelic.com/graphql")
	v.SetDefault("timeout", 30*time.Second)

	// Binding every key makes AutomaticEnv visible to Unmarshal.
	v.SetDefault("account_id", 0)
	v.SetDefault("api_key", "")
	v.SetDefault("queries.total", "")
	v.SetDefault("queries.used", "")
	v.SetDefault("queries.prediction", "")

	fields := storagecast.DefaultFieldNames()
	v.SetDefault("fields.total", fields.Total)
	v.SetDefault("fields.used", fields.Used)
	v.SetDefault("fields.prediction", fields.Prediction)

	v.SetDefault("timezone", "UTC")
	v.SetDefault("locale", "en-US")
	v.SetDefault("label_layout", "")
	v.SetDefault("anchor_policy", string(storagecast.AnchorCarryForward))

	v.SetDefault("output.format", FormatJSON)
	v.SetDefault("output.path", "")
	v.SetDefault("output.pretty", false)
	v.SetDefault("output.width", 1024)
	v.SetDefault("output.height", 512)
	v.SetDefault("output.colors", true)

	v.SetDefault("logging.level", "info")
}

// validate checks configuration for errors
func validate(cfg *Config) error {
	switch cfg.Output.Format {
	case FormatJSON, FormatProjection, FormatTable, FormatXLSX, FormatPNG:
	default:
		return fmt.Errorf("invalid output format %q: must be json, projection, table, xlsx, or png", cfg.Output.Format)
	}

	if _, err := storagecast.ParseAnchorPolicy(cfg.AnchorPolicy); err != nil {
		return err
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	if _, err := storagecast.ParseLocale(cfg.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
	}

	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q: must be debug, info, warn, or error", cfg.Logging.Level)
	}

	return nil
}

// Location returns the configured time zone
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Tag returns the configured locale
func (c *Config) Tag() language.Tag {
	tag, err := storagecast.ParseLocale(c.Locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// ProjectOptions builds projection options from the configuration.
// Without an explicit label layout, the locale decides it.
func (c *Config) ProjectOptions() (storagecast.Options, error) {
	loc, err := c.Location()
	if err != nil {
		return storagecast.Options{}, err
	}
	policy, err := storagecast.ParseAnchorPolicy(c.AnchorPolicy)
	if err != nil {
		return storagecast.Options{}, err
	}
	layout := c.LabelLayout
	if layout == "" {
		layout = storagecast.DateLayout(c.Tag())
	}
	return storagecast.Options{
		Location:     loc,
		LabelLayout:  layout,
		AnchorPolicy: policy,
	}, nil
}

// FieldNames returns the configured result field names
func (c *Config) FieldNames() storagecast.FieldNames {
	return storagecast.FieldNames{
		Total:      c.Fields.Total,
		Used:       c.Fields.Used,
		Prediction: c.Fields.Prediction,
	}
}
