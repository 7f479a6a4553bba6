package report_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"ptofunds/reconcile/internal/logging"
	"ptofunds/reconcile/internal/models"
	"ptofunds/reconcile/internal/report"
)

func sampleResults() []*models.MatchResult {
	return []*models.MatchResult{
		{
			Transaction: &models.BankTransaction{
				ID:     "bt-1",
				Amount: models.ParseAmount("-100.00"),
				Date:   models.MustDate("2024-03-01"),
			},
			Candidates: []models.MatchCandidate{
				{
					Expense:    &models.ExpenseRecord{ID: "exp-1", Vendor: "Walmart"},
					Confidence: 0.96,
					Reasons:    []string{"Exact amount match"},
				},
			},
			AutoMatch: true,
		},
		{
			Transaction: &models.BankTransaction{ID: "bt-2", Amount: models.ParseAmount("7.00")},
		},
	}
}

func TestNewRun(t *testing.T) {
	results := sampleResults()
	stats := models.Stats{Total: 2, WithSuggestions: 1, AutoMatched: 1, NoMatches: 1}

	run := report.NewRun(results, stats)

	_, err := uuid.Parse(run.RunID)
	require.NoError(t, err, "run ID must be a valid UUID")
	assert.False(t, run.GeneratedAt.IsZero())
	assert.Equal(t, stats, run.Stats)

	require.Len(t, run.Results, 2)
	assert.Equal(t, "bt-1", run.Results[0].TransactionID)
	assert.Equal(t, "-100.00", run.Results[0].Amount)
	assert.Equal(t, "exp-1", run.Results[0].BestExpenseID)
	assert.True(t, run.Results[0].AutoMatch)

	assert.Equal(t, "bt-2", run.Results[1].TransactionID)
	assert.Empty(t, run.Results[1].BestExpenseID)
	assert.Zero(t, run.Results[1].Confidence)
}

func TestNewRunAssignsFreshIDs(t *testing.T) {
	a := report.NewRun(nil, models.Stats{})
	b := report.NewRun(nil, models.Stats{})
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestGenerateJSON(t *testing.T) {
	g := report.NewGenerator(&logging.MockLogger{})
	run := report.NewRun(sampleResults(), models.Stats{Total: 2})

	data, err := g.Generate(run, "json")
	require.NoError(t, err)

	var decoded report.Run
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, run.RunID, decoded.RunID)
	assert.Equal(t, 2, decoded.Stats.Total)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "exp-1", decoded.Results[0].BestExpenseID)
}

func TestGenerateYAML(t *testing.T) {
	g := report.NewGenerator(&logging.MockLogger{})
	run := report.NewRun(sampleResults(), models.Stats{Total: 2})

	data, err := g.Generate(run, "yaml")
	require.NoError(t, err)

	var decoded report.Run
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, run.RunID, decoded.RunID)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "bt-2", decoded.Results[1].TransactionID)
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	g := report.NewGenerator(&logging.MockLogger{})

	_, err := g.Generate(report.Run{}, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}
