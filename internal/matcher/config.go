// Package matcher implements the bank-transaction-to-expense reconciliation
// matcher: per-dimension fuzzy scoring, weighted aggregation, and the
// threshold policy deciding which matches apply automatically versus being
// suggested for human confirmation.
package matcher

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Weights defines the relative importance of each scoring dimension.
// Each weight must lie in [0,1]; they need not sum to 1, but the defaults do.
type Weights struct {
	Amount      float64 `json:"amount" yaml:"amount"`
	Description float64 `json:"description" yaml:"description"`
	Date        float64 `json:"date" yaml:"date"`
	Vendor      float64 `json:"vendor" yaml:"vendor"`
}

// Config holds the tolerances, thresholds, and weights for one matching run.
//
// A Config is an immutable snapshot: it is passed by value to every scoring
// call and never mutated, so concurrent runs with different settings cannot
// interfere with each other.
type Config struct {
	// Weights for combining per-dimension scores into one confidence.
	Weights Weights `json:"weights" yaml:"weights"`

	// AutoMatchThreshold is the minimum best-candidate confidence for a
	// transaction to be matched without human review.
	AutoMatchThreshold float64 `json:"auto_match_threshold" yaml:"auto_match_threshold"`

	// SuggestThreshold is the minimum confidence for a candidate to be
	// retained as a suggestion at all.
	SuggestThreshold float64 `json:"suggest_threshold" yaml:"suggest_threshold"`

	// AmountTolerance is the absolute difference under which two amounts are
	// considered an exact match.
	AmountTolerance decimal.Decimal `json:"amount_tolerance" yaml:"amount_tolerance"`

	// DateWindowDays is the widest day gap that still earns a nonzero date
	// score.
	DateWindowDays int `json:"date_window_days" yaml:"date_window_days"`

	// FuzzyThreshold is the minimum textual similarity for fuzzy vendor-alias
	// resolution.
	FuzzyThreshold float64 `json:"fuzzy_threshold" yaml:"fuzzy_threshold"`
}

// DefaultConfig returns the balanced configuration used for routine
// reconciliation runs.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Amount:      0.4,
			Description: 0.3,
			Date:        0.2,
			Vendor:      0.1,
		},
		AutoMatchThreshold: 0.85,
		SuggestThreshold:   0.6,
		AmountTolerance:    decimal.NewFromFloat(0.01),
		DateWindowDays:     30,
		FuzzyThreshold:     0.7,
	}
}

// StrictConfig returns a configuration that only auto-matches near-certain
// pairs. Useful when review capacity is limited and false positives are
// expensive.
func StrictConfig() Config {
	cfg := DefaultConfig()
	cfg.AutoMatchThreshold = 0.95
	cfg.SuggestThreshold = 0.75
	cfg.DateWindowDays = 14
	cfg.FuzzyThreshold = 0.85
	return cfg
}

// RelaxedConfig returns a configuration for exploratory matching over messy
// imports: more suggestions surface, nothing extra auto-matches.
func RelaxedConfig() Config {
	cfg := DefaultConfig()
	cfg.SuggestThreshold = 0.4
	cfg.DateWindowDays = 60
	cfg.FuzzyThreshold = 0.6
	return cfg
}

// Validate checks that every weight and threshold lies in its legal range.
func (c Config) Validate() error {
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"amount", c.Weights.Amount},
		{"description", c.Weights.Description},
		{"date", c.Weights.Date},
		{"vendor", c.Weights.Vendor},
	} {
		if w.value < 0.0 || w.value > 1.0 {
			return fmt.Errorf("%s weight must be between 0.0 and 1.0: %f", w.name, w.value)
		}
	}

	if c.AutoMatchThreshold < 0.0 || c.AutoMatchThreshold > 1.0 {
		return fmt.Errorf("auto-match threshold must be between 0.0 and 1.0: %f", c.AutoMatchThreshold)
	}
	if c.SuggestThreshold < 0.0 || c.SuggestThreshold > 1.0 {
		return fmt.Errorf("suggest threshold must be between 0.0 and 1.0: %f", c.SuggestThreshold)
	}
	if c.FuzzyThreshold < 0.0 || c.FuzzyThreshold > 1.0 {
		return fmt.Errorf("fuzzy threshold must be between 0.0 and 1.0: %f", c.FuzzyThreshold)
	}
	if c.AmountTolerance.IsNegative() {
		return fmt.Errorf("amount tolerance cannot be negative: %s", c.AmountTolerance)
	}
	if c.DateWindowDays < 0 {
		return fmt.Errorf("date window days cannot be negative: %d", c.DateWindowDays)
	}

	return nil
}

// String returns a human-readable description of the configuration.
func (c Config) String() string {
	return fmt.Sprintf("Config{AutoMatch: %.2f, Suggest: %.2f, AmountTolerance: %s, DateWindow: %dd}",
		c.AutoMatchThreshold, c.SuggestThreshold, c.AmountTolerance, c.DateWindowDays)
}
