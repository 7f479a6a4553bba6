package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"ptofunds/reconcile/internal/matcher"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Matcher struct {
		AmountWeight       float64 `mapstructure:"amount_weight" yaml:"amount_weight"`
		DescriptionWeight  float64 `mapstructure:"description_weight" yaml:"description_weight"`
		DateWeight         float64 `mapstructure:"date_weight" yaml:"date_weight"`
		VendorWeight       float64 `mapstructure:"vendor_weight" yaml:"vendor_weight"`
		AutoMatchThreshold float64 `mapstructure:"auto_match_threshold" yaml:"auto_match_threshold"`
		SuggestThreshold   float64 `mapstructure:"suggest_threshold" yaml:"suggest_threshold"`
		AmountTolerance    float64 `mapstructure:"amount_tolerance" yaml:"amount_tolerance"`
		DateWindowDays     int     `mapstructure:"date_window_days" yaml:"date_window_days"`
		FuzzyThreshold     float64 `mapstructure:"fuzzy_threshold" yaml:"fuzzy_threshold"`
	} `mapstructure:"matcher" yaml:"matcher"`

	Aliases struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"aliases" yaml:"aliases"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then RECON_-prefixed environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.reconcile")
	v.AddConfigPath(".reconcile")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RECON")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars; a broken file should not
			// block a run that never needed it.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	defaults := matcher.DefaultConfig()
	v.SetDefault("matcher.amount_weight", defaults.Weights.Amount)
	v.SetDefault("matcher.description_weight", defaults.Weights.Description)
	v.SetDefault("matcher.date_weight", defaults.Weights.Date)
	v.SetDefault("matcher.vendor_weight", defaults.Weights.Vendor)
	v.SetDefault("matcher.auto_match_threshold", defaults.AutoMatchThreshold)
	v.SetDefault("matcher.suggest_threshold", defaults.SuggestThreshold)
	v.SetDefault("matcher.amount_tolerance", 0.01)
	v.SetDefault("matcher.date_window_days", defaults.DateWindowDays)
	v.SetDefault("matcher.fuzzy_threshold", defaults.FuzzyThreshold)

	v.SetDefault("aliases.file", "vendor_aliases.yaml")
}

// validateConfig performs validation on the loaded configuration.
func validateConfig(config *Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[config.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[config.Log.Format] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	return config.MatcherConfig().Validate()
}

// MatcherConfig materializes an immutable matcher configuration snapshot for
// one run.
func (c *Config) MatcherConfig() matcher.Config {
	return matcher.Config{
		Weights: matcher.Weights{
			Amount:      c.Matcher.AmountWeight,
			Description: c.Matcher.DescriptionWeight,
			Date:        c.Matcher.DateWeight,
			Vendor:      c.Matcher.VendorWeight,
		},
		AutoMatchThreshold: c.Matcher.AutoMatchThreshold,
		SuggestThreshold:   c.Matcher.SuggestThreshold,
		AmountTolerance:    decimal.NewFromFloat(c.Matcher.AmountTolerance),
		DateWindowDays:     c.Matcher.DateWindowDays,
		FuzzyThreshold:     c.Matcher.FuzzyThreshold,
	}
}
