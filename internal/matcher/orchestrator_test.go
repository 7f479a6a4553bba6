package matcher_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptofunds/reconcile/internal/logging"
	"ptofunds/reconcile/internal/matcher"
	"ptofunds/reconcile/internal/models"
	"ptofunds/reconcile/internal/store"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFindMatchesExactPairAutoMatches(t *testing.T) {
	// Bank: $100.00, "WALMART POS 1234", 2024-03-01 against a same-day
	// $100.00 Walmart expense must score at least 0.9 and auto-match.
	cfg := matcher.DefaultConfig()

	txs := []models.BankTransaction{
		{
			ID:          "bt-1",
			Amount:      amt("100.00"),
			Description: "WALMART POS 1234",
			Date:        models.MustDate("2024-03-01"),
		},
	}
	pool := []models.ExpenseRecord{
		{
			ID:     "exp-1",
			Amount: amt("100.00"),
			Vendor: "Walmart",
			Date:   models.MustDate("2024-03-01"),
		},
	}

	results := matcher.FindMatches(txs, pool, cfg)

	require.Len(t, results, 1)
	best := results[0].Best()
	require.NotNil(t, best)
	assert.GreaterOrEqual(t, best.Confidence, 0.9)
	assert.True(t, results[0].AutoMatch)
	assert.False(t, results[0].IsMatched, "scoring must not confirm matches")
}

func TestFindMatchesTenPercentAmountGapStaysManual(t *testing.T) {
	cfg := matcher.DefaultConfig()

	txs := []models.BankTransaction{
		{ID: "bt-1", Amount: amt("50.00"), Date: models.MustDate("2024-03-01")},
	}
	pool := []models.ExpenseRecord{
		{ID: "exp-1", Amount: amt("45.00"), Date: models.MustDate("2024-03-01")},
	}

	candidate := matcher.Score(&txs[0], &pool[0], cfg)
	assert.InDelta(t, 0.70, candidate.Breakdown[models.DimensionAmount], 1e-9)
	assert.Less(t, candidate.Confidence, 0.85)

	results := matcher.FindMatches(txs, pool, cfg)
	require.Len(t, results, 1)
	assert.False(t, results[0].AutoMatch)
}

func TestFindMatchesLargeDateGapZeroesDateDimension(t *testing.T) {
	cfg := matcher.DefaultConfig()

	tx := models.BankTransaction{
		ID:          "bt-1",
		Amount:      amt("75.00"),
		Description: "TARGET STORE",
		Date:        models.MustDate("2024-01-01"),
	}
	expense := models.ExpenseRecord{
		ID:     "exp-1",
		Amount: amt("75.00"),
		Vendor: "Target",
		Date:   models.MustDate("2024-02-10"), // 40 days
	}

	candidate := matcher.Score(&tx, &expense, cfg)
	assert.Zero(t, candidate.Breakdown[models.DimensionDate])
}

func TestFindMatchesPoolNotConsumed(t *testing.T) {
	// Two transactions may independently suggest the same expense; the
	// matcher never removes a suggested expense from the pool.
	cfg := matcher.DefaultConfig()

	txs := []models.BankTransaction{
		{ID: "bt-1", Amount: amt("60.00"), Description: "SHELL", Date: models.MustDate("2024-03-05")},
		{ID: "bt-2", Amount: amt("60.00"), Description: "SHELL", Date: models.MustDate("2024-03-05")},
	}
	pool := []models.ExpenseRecord{
		{ID: "exp-1", Amount: amt("60.00"), Vendor: "Shell", Date: models.MustDate("2024-03-05")},
	}

	results := matcher.FindMatches(txs, pool, cfg)

	require.Len(t, results, 2)
	require.NotNil(t, results[0].Best())
	require.NotNil(t, results[1].Best())
	assert.Equal(t, "exp-1", results[0].Best().Expense.ID)
	assert.Equal(t, "exp-1", results[1].Best().Expense.ID)
}

func TestFindMatchesDeterministic(t *testing.T) {
	cfg := matcher.DefaultConfig()

	txs := []models.BankTransaction{
		{ID: "bt-1", Amount: amt("100.00"), Description: "WALMART POS", Date: models.MustDate("2024-03-01")},
		{ID: "bt-2", Amount: amt("42.50"), Description: "SHELL GAS", Date: models.MustDate("2024-03-03")},
	}
	pool := []models.ExpenseRecord{
		{ID: "exp-1", Amount: amt("100.00"), Vendor: "Walmart", Date: models.MustDate("2024-03-01")},
		{ID: "exp-2", Amount: amt("42.50"), Vendor: "Shell", Date: models.MustDate("2024-03-03")},
		{ID: "exp-3", Amount: amt("99.50"), Vendor: "Walmart", Date: models.MustDate("2024-03-02")},
	}

	first := matcher.FindMatches(txs, pool, cfg)
	second := matcher.FindMatches(txs, pool, cfg)

	require.Len(t, second, len(first))
	for i := range first {
		require.Len(t, second[i].Candidates, len(first[i].Candidates))
		for j := range first[i].Candidates {
			assert.Equal(t, first[i].Candidates[j].Expense.ID, second[i].Candidates[j].Expense.ID)
			assert.Equal(t, first[i].Candidates[j].Confidence, second[i].Candidates[j].Confidence)
		}
	}
}

func TestPerformAutoMatching(t *testing.T) {
	cfg := matcher.DefaultConfig()

	txs := []models.BankTransaction{
		{ID: "bt-1", Amount: amt("100.00"), Description: "WALMART POS", Date: models.MustDate("2024-03-01")},
		{ID: "bt-2", Amount: amt("999.99"), Description: "UNKNOWN WIRE", Date: models.MustDate("2024-03-01")},
	}
	pool := []models.ExpenseRecord{
		{ID: "exp-1", Amount: amt("100.00"), Vendor: "Walmart", Date: models.MustDate("2024-03-01")},
	}

	results := matcher.FindMatches(txs, pool, cfg)
	applied := matcher.PerformAutoMatching(results)

	require.Len(t, applied, 1)
	assert.Equal(t, "bt-1", applied[0].Transaction.ID)
	assert.True(t, applied[0].IsMatched)
	require.NotNil(t, applied[0].MatchedExpense)
	assert.Equal(t, "exp-1", applied[0].MatchedExpense.ID)

	// The non-auto result is untouched.
	assert.False(t, results[1].IsMatched)
	assert.Nil(t, results[1].MatchedExpense)
}

func TestEngineFindMatchesLogsAndDelegates(t *testing.T) {
	cfg := matcher.DefaultConfig()
	log := &logging.MockLogger{}
	engine := matcher.NewEngine(cfg, log)

	txs := []models.BankTransaction{
		{ID: "bt-1", Amount: amt("100.00"), Description: "WALMART POS", Date: models.MustDate("2024-03-01")},
	}
	pool := []models.ExpenseRecord{
		{ID: "exp-1", Amount: amt("100.00"), Vendor: "Walmart", Date: models.MustDate("2024-03-01")},
	}

	results := engine.FindMatches(txs, pool)

	require.Len(t, results, 1)
	assert.True(t, results[0].AutoMatch)
	assert.True(t, log.HasEntry("INFO", "Matching bank transactions against expense pool"))
}

func TestEngineResolvesVendorAliases(t *testing.T) {
	cfg := matcher.DefaultConfig()
	log := &logging.MockLogger{}
	resolver := &store.MockAliasResolver{
		Mappings: map[string]string{"WM SUPERCENTER": "Walmart"},
	}
	engine := matcher.NewEngine(cfg, log).WithAliases(resolver)

	txs := []models.BankTransaction{
		{ID: "bt-1", Amount: amt("100.00"), Description: "WALMART POS 1234", Date: models.MustDate("2024-03-01")},
	}
	pool := []models.ExpenseRecord{
		{ID: "exp-1", Amount: amt("100.00"), Vendor: "WM SUPERCENTER", Date: models.MustDate("2024-03-01")},
	}

	results := engine.FindMatches(txs, pool)

	require.Len(t, results, 1)
	require.NotNil(t, results[0].Best())
	assert.True(t, results[0].AutoMatch)
	assert.Equal(t, "Walmart", results[0].Best().Expense.Vendor)
	assert.Contains(t, resolver.Calls, "WM SUPERCENTER")

	// The caller's pool is never mutated.
	assert.Equal(t, "WM SUPERCENTER", pool[0].Vendor)
}

func TestEngineConfigSnapshot(t *testing.T) {
	cfg := matcher.StrictConfig()
	engine := matcher.NewEngine(cfg, &logging.MockLogger{})
	assert.Equal(t, cfg, engine.Config())
}
