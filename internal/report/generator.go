// Package report renders the outcome of a matching run for the review
// workflow that consumes it.
package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"ptofunds/reconcile/internal/logging"
	"ptofunds/reconcile/internal/models"
)

// Run is the serializable record of one matching run.
type Run struct {
	RunID       string         `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Stats       models.Stats   `json:"stats" yaml:"stats"`
	Results     []ResultRecord `json:"results" yaml:"results"`
}

// ResultRecord summarizes one transaction's outcome.
type ResultRecord struct {
	TransactionID string   `json:"transaction_id" yaml:"transaction_id"`
	Amount        string   `json:"amount" yaml:"amount"`
	Date          string   `json:"date" yaml:"date"`
	BestExpenseID string   `json:"best_expense_id,omitempty" yaml:"best_expense_id,omitempty"`
	Confidence    float64  `json:"confidence" yaml:"confidence"`
	AutoMatch     bool     `json:"auto_match" yaml:"auto_match"`
	Reasons       []string `json:"reasons,omitempty" yaml:"reasons,omitempty"`
	Suggestions   int      `json:"suggestions" yaml:"suggestions"`
}

// Generator renders match runs in the supported output formats.
type Generator struct {
	log logging.Logger
}

// NewGenerator creates a report generator.
func NewGenerator(log logging.Logger) *Generator {
	return &Generator{log: log}
}

// NewRun assembles a Run from a batch of results and its statistics,
// assigning a fresh run identifier.
func NewRun(results []*models.MatchResult, stats models.Stats) Run {
	run := Run{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Stats:       stats,
		Results:     make([]ResultRecord, 0, len(results)),
	}

	for _, r := range results {
		record := ResultRecord{
			TransactionID: r.Transaction.ID,
			Amount:        r.Transaction.Amount.StringFixed(2),
			Date:          r.Transaction.Date.String(),
			AutoMatch:     r.AutoMatch,
			Suggestions:   len(r.Candidates),
		}
		if best := r.Best(); best != nil {
			record.BestExpenseID = best.Expense.ID
			record.Confidence = best.Confidence
			record.Reasons = best.Reasons
		}
		run.Results = append(run.Results, record)
	}

	return run
}

// Generate renders the run in the specified format ("json" or "yaml").
// It returns the rendered bytes, or an error for unsupported formats.
func (g *Generator) Generate(run Run, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSON(run)
	case "yaml":
		return g.generateYAML(run)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(run Run) ([]byte, error) {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		g.log.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

func (g *Generator) generateYAML(run Run) ([]byte, error) {
	data, err := yaml.Marshal(run)
	if err != nil {
		g.log.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return data, nil
}
