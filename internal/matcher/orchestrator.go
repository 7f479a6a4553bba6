package matcher

import (
	"ptofunds/reconcile/internal/logging"
	"ptofunds/reconcile/internal/models"
)

// AliasResolver maps a submitted vendor name to its canonical form before
// scoring (e.g. "WAL-MART #2038" and "Walmart" are the same merchant).
type AliasResolver interface {
	Resolve(vendor string) string
}

// Engine runs the matcher over a full batch. It carries an immutable Config
// snapshot, a logger, and an optional vendor alias resolver; it holds no
// per-run state, so one Engine may serve concurrent runs.
type Engine struct {
	cfg     Config
	log     logging.Logger
	aliases AliasResolver
}

// NewEngine creates an Engine with the given configuration snapshot.
func NewEngine(cfg Config, log logging.Logger) *Engine {
	return &Engine{cfg: cfg, log: log}
}

// WithAliases attaches a vendor alias resolver and returns the engine.
func (e *Engine) WithAliases(r AliasResolver) *Engine {
	e.aliases = r
	return e
}

// Config returns the engine's configuration snapshot.
func (e *Engine) Config() Config {
	return e.cfg
}

// FindMatches builds one MatchResult per bank transaction, each with its
// ranked suggestions and auto-match decision, independently of every other
// transaction. Expenses are not consumed: the same expense may be suggested
// for several transactions, and resolving such conflicts is an explicit
// post-processing concern (see ResolveConflicts).
func FindMatches(txs []models.BankTransaction, pool []models.ExpenseRecord, cfg Config) []*models.MatchResult {
	results := make([]*models.MatchResult, 0, len(txs))
	for i := range txs {
		tx := &txs[i]
		candidates := SuggestionsFor(tx, pool, cfg)

		autoMatch := false
		if len(candidates) > 0 && candidates[0].Confidence >= cfg.AutoMatchThreshold {
			autoMatch = true
		}

		results = append(results, &models.MatchResult{
			Transaction: tx,
			Candidates:  candidates,
			AutoMatch:   autoMatch,
		})
	}
	return results
}

// FindMatches runs the batch through the package-level matcher after vendor
// alias resolution, logging per-transaction outcomes.
func (e *Engine) FindMatches(txs []models.BankTransaction, pool []models.ExpenseRecord) []*models.MatchResult {
	pool = e.resolveVendors(pool)

	e.log.WithFields(
		logging.Field{Key: "transactions", Value: len(txs)},
		logging.Field{Key: "expenses", Value: len(pool)},
	).Info("Matching bank transactions against expense pool")

	results := FindMatches(txs, pool, e.cfg)

	for _, r := range results {
		entry := e.log.WithFields(
			logging.Field{Key: logging.FieldTransactionID, Value: r.Transaction.ID},
			logging.Field{Key: "suggestions", Value: len(r.Candidates)},
		)
		if best := r.Best(); best != nil {
			entry = entry.WithFields(
				logging.Field{Key: logging.FieldExpenseID, Value: best.Expense.ID},
				logging.Field{Key: logging.FieldConfidence, Value: best.Confidence},
			)
		}
		entry.Debug("Scored bank transaction")
	}

	return results
}

// resolveVendors returns a copy of the pool with vendor names mapped to
// their canonical forms. The caller's records are never mutated.
func (e *Engine) resolveVendors(pool []models.ExpenseRecord) []models.ExpenseRecord {
	if e.aliases == nil {
		return pool
	}

	resolved := make([]models.ExpenseRecord, len(pool))
	copy(resolved, pool)
	for i := range resolved {
		canonical := e.aliases.Resolve(resolved[i].Vendor)
		if canonical != resolved[i].Vendor {
			e.log.WithFields(
				logging.Field{Key: logging.FieldVendor, Value: resolved[i].Vendor},
				logging.Field{Key: "canonical", Value: canonical},
			).Debug("Resolved vendor alias")
			resolved[i].Vendor = canonical
		}
	}
	return resolved
}

// PerformAutoMatching applies every auto-match decision: results flagged
// AutoMatch get IsMatched set and their best expense recorded, and the
// mutated subset is returned. Uniqueness across results is not enforced here.
func PerformAutoMatching(results []*models.MatchResult) []*models.MatchResult {
	var applied []*models.MatchResult
	for _, r := range results {
		if !r.AutoMatch {
			continue
		}
		best := r.Best()
		if best == nil {
			continue
		}
		r.IsMatched = true
		r.MatchedExpense = best.Expense
		applied = append(applied, r)
	}
	return applied
}

// PerformAutoMatching applies auto-matches and logs each applied result.
func (e *Engine) PerformAutoMatching(results []*models.MatchResult) []*models.MatchResult {
	applied := PerformAutoMatching(results)
	for _, r := range applied {
		e.log.WithFields(
			logging.Field{Key: logging.FieldTransactionID, Value: r.Transaction.ID},
			logging.Field{Key: logging.FieldExpenseID, Value: r.MatchedExpense.ID},
			logging.Field{Key: logging.FieldConfidence, Value: r.Best().Confidence},
		).Info("Auto-matched bank transaction")
	}
	e.log.WithField(logging.FieldCount, len(applied)).Info("Auto-matching complete")
	return applied
}
