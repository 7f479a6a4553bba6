package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptofunds/reconcile/internal/models"
)

func TestScoreWeightsAndBounds(t *testing.T) {
	cfg := DefaultConfig()

	tx := &models.BankTransaction{
		ID:          "bt-1",
		Amount:      amt("100.00"),
		Description: "WALMART POS 1234",
		Date:        models.MustDate("2024-03-01"),
	}
	expense := &models.ExpenseRecord{
		ID:     "exp-1",
		Amount: amt("100.00"),
		Vendor: "Walmart",
		Date:   models.MustDate("2024-03-01"),
	}

	candidate := Score(tx, expense, cfg)

	require.Len(t, candidate.Breakdown, 4)
	for dim, score := range candidate.Breakdown {
		assert.GreaterOrEqual(t, score, 0.0, dim)
		assert.LessOrEqual(t, score, 1.0, dim)
	}
	assert.GreaterOrEqual(t, candidate.Confidence, 0.0)
	assert.LessOrEqual(t, candidate.Confidence, 1.0)

	// Perfect pair: every dimension maxes out and the weighted sum is 1.0.
	assert.InDelta(t, 1.0, candidate.Confidence, 1e-9)
}

func TestScoreClampsOverweightedConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights = Weights{Amount: 1.0, Description: 1.0, Date: 1.0, Vendor: 1.0}

	tx := &models.BankTransaction{
		Amount:      amt("25.00"),
		Description: "COSTCO WHOLESALE",
		Date:        models.MustDate("2024-05-05"),
	}
	expense := &models.ExpenseRecord{
		Amount: amt("25.00"),
		Vendor: "Costco Wholesale",
		Date:   models.MustDate("2024-05-05"),
	}

	candidate := Score(tx, expense, cfg)
	assert.InDelta(t, 1.0, candidate.Confidence, 1e-9)
}

func TestScoreEmptyDescriptionLeavesOtherDimensions(t *testing.T) {
	cfg := DefaultConfig()

	tx := &models.BankTransaction{
		Amount: amt("42.00"),
		Date:   models.MustDate("2024-03-01"),
	}
	expense := &models.ExpenseRecord{
		Amount: amt("42.00"),
		Vendor: "Walmart",
		Date:   models.MustDate("2024-03-01"),
	}

	candidate := Score(tx, expense, cfg)

	assert.Zero(t, candidate.Breakdown[models.DimensionDescription])
	assert.Zero(t, candidate.Breakdown[models.DimensionVendor])
	expected := 1.0*cfg.Weights.Amount + 1.0*cfg.Weights.Date
	assert.InDelta(t, expected, candidate.Confidence, 1e-9)
}

func TestMatchReasons(t *testing.T) {
	tests := []struct {
		name      string
		breakdown map[string]float64
		expected  []string
	}{
		{
			name: "exact amount and same day",
			breakdown: map[string]float64{
				models.DimensionAmount:      1.0,
				models.DimensionDescription: 0.85,
				models.DimensionDate:        1.0,
				models.DimensionVendor:      1.0,
			},
			expected: []string{"Exact amount match", "Strong description match", "Same/next day", "Vendor name match"},
		},
		{
			name: "close bands",
			breakdown: map[string]float64{
				models.DimensionAmount:      0.85,
				models.DimensionDescription: 0.65,
				models.DimensionDate:        0.6,
				models.DimensionVendor:      0.5,
			},
			expected: []string{"Very close amount", "Similar description", "Within a week"},
		},
		{
			name: "similar amount only",
			breakdown: map[string]float64{
				models.DimensionAmount:      0.70,
				models.DimensionDescription: 0.3,
				models.DimensionDate:        0.4,
				models.DimensionVendor:      0.0,
			},
			expected: []string{"Similar amount"},
		},
		{
			name: "nothing qualifies falls back to potential match",
			breakdown: map[string]float64{
				models.DimensionAmount:      0.50,
				models.DimensionDescription: 0.5,
				models.DimensionDate:        0.4,
				models.DimensionVendor:      0.5,
			},
			expected: []string{"Potential match"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matchReasons(tt.breakdown))
		})
	}
}

func TestSuggestionsFor(t *testing.T) {
	cfg := DefaultConfig()

	tx := &models.BankTransaction{
		ID:          "bt-1",
		Amount:      amt("120.00"),
		Description: "COSTCO WHOLESALE #512",
		Date:        models.MustDate("2024-04-10"),
	}
	pool := []models.ExpenseRecord{
		{ID: "exp-distant", Amount: amt("700.00"), Vendor: "Delta", Date: models.MustDate("2023-01-01")},
		{ID: "exp-exact", Amount: amt("120.00"), Vendor: "Costco Wholesale", Date: models.MustDate("2024-04-10")},
		{ID: "exp-close", Amount: amt("119.00"), Vendor: "Costco", Date: models.MustDate("2024-04-12")},
	}

	suggestions := SuggestionsFor(tx, pool, cfg)

	require.NotEmpty(t, suggestions)
	assert.Equal(t, "exp-exact", suggestions[0].Expense.ID)

	for _, s := range suggestions {
		assert.GreaterOrEqual(t, s.Confidence, cfg.SuggestThreshold)
		assert.NotEmpty(t, s.Reasons)
	}
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Confidence, suggestions[i].Confidence)
	}

	// The distant expense never clears the threshold.
	for _, s := range suggestions {
		assert.NotEqual(t, "exp-distant", s.Expense.ID)
	}
}

func TestSuggestionsForDeterministicTieBreak(t *testing.T) {
	cfg := DefaultConfig()

	tx := &models.BankTransaction{
		ID:          "bt-1",
		Amount:      amt("30.00"),
		Description: "PIZZA PALACE",
		Date:        models.MustDate("2024-02-01"),
	}
	// Two byte-for-byte identical expenses except for their IDs.
	pool := []models.ExpenseRecord{
		{ID: "exp-b", Amount: amt("30.00"), Vendor: "Pizza Palace", Date: models.MustDate("2024-02-01")},
		{ID: "exp-a", Amount: amt("30.00"), Vendor: "Pizza Palace", Date: models.MustDate("2024-02-01")},
	}

	first := SuggestionsFor(tx, pool, cfg)
	second := SuggestionsFor(tx, pool, cfg)

	require.Len(t, first, 2)
	assert.Equal(t, "exp-a", first[0].Expense.ID)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].Expense.ID, second[0].Expense.ID)
	assert.Equal(t, first[0].Confidence, second[0].Confidence)
}

func TestSuggestionsForEmptyPool(t *testing.T) {
	tx := &models.BankTransaction{ID: "bt-1", Amount: amt("10.00")}
	assert.Empty(t, SuggestionsFor(tx, nil, DefaultConfig()))
}
