// Package csvio reads canonical bank-transaction and expense CSV exports and
// writes review sheets. Heterogeneous source shapes (header aliases, loose
// amount and date formats) are canonicalized here, at the system boundary,
// so the scoring core never branches on field presence.
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"ptofunds/reconcile/internal/logging"
	"ptofunds/reconcile/internal/models"
)

// Delimiter is the CSV delimiter used for reading and writing.
var Delimiter rune = ','

var log logging.Logger = &logging.MockLogger{}

// SetDelimiter sets the delimiter for CSV input and output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger sets a configured logger for the package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.WithField(logging.FieldFile, filePath).Info("Reading CSV file")

	file, err := os.Open(filePath) // #nosec G304 -- path comes from CLI flags
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = Delimiter

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField(logging.FieldCount, len(rows)).Info("Successfully read CSV data")
	return rows, nil
}

// bankRow is the loosely-typed shape of a bank transaction export.
// Alternate headers seen in the wild map onto the same canonical field.
type bankRow struct {
	ID              string `csv:"id"`
	Amount          string `csv:"amount"`
	Description     string `csv:"description"`
	Date            string `csv:"date"`
	TransactionDate string `csv:"transaction_date"`
}

// expenseRow is the loosely-typed shape of an expense-tracker export.
type expenseRow struct {
	ID          string `csv:"id"`
	Amount      string `csv:"amount"`
	Vendor      string `csv:"vendor"`
	Merchant    string `csv:"merchant"`
	Description string `csv:"description"`
	Date        string `csv:"date"`
	ExpenseDate string `csv:"expense_date"`
	Category    string `csv:"category"`
}

// ReadBankTransactions loads a canonical bank transaction CSV.
func ReadBankTransactions(filePath string) ([]models.BankTransaction, error) {
	rows, err := ReadCSVFile[bankRow](filePath)
	if err != nil {
		return nil, err
	}

	txs := make([]models.BankTransaction, 0, len(rows))
	for _, row := range rows {
		date := row.Date
		if date == "" {
			date = row.TransactionDate
		}
		txs = append(txs, models.BankTransaction{
			ID:          strings.TrimSpace(row.ID),
			Amount:      models.ParseAmount(row.Amount),
			Description: strings.TrimSpace(row.Description),
			Date:        models.ParseDate(date),
		})
	}
	return txs, nil
}

// ReadExpenses loads a canonical expense pool CSV.
func ReadExpenses(filePath string) ([]models.ExpenseRecord, error) {
	rows, err := ReadCSVFile[expenseRow](filePath)
	if err != nil {
		return nil, err
	}

	expenses := make([]models.ExpenseRecord, 0, len(rows))
	for _, row := range rows {
		vendor := row.Vendor
		if vendor == "" {
			vendor = row.Merchant
		}
		date := row.Date
		if date == "" {
			date = row.ExpenseDate
		}
		expenses = append(expenses, models.ExpenseRecord{
			ID:          strings.TrimSpace(row.ID),
			Amount:      models.ParseAmount(row.Amount),
			Vendor:      strings.TrimSpace(vendor),
			Description: strings.TrimSpace(row.Description),
			Date:        models.ParseDate(date),
			Category:    strings.TrimSpace(row.Category),
		})
	}
	return expenses, nil
}

// resultRow flattens one match result into a reviewable CSV line.
type resultRow struct {
	TransactionID string `csv:"transaction_id"`
	Date          string `csv:"date"`
	Amount        string `csv:"amount"`
	Description   string `csv:"description"`
	BestExpenseID string `csv:"best_expense_id"`
	BestVendor    string `csv:"best_vendor"`
	Confidence    string `csv:"confidence"`
	AutoMatch     bool   `csv:"auto_match"`
	IsMatched     bool   `csv:"is_matched"`
	Suggestions   int    `csv:"suggestions"`
	Reasons       string `csv:"reasons"`
}

// WriteResults writes a review sheet with one line per bank transaction and
// its best suggestion.
func WriteResults(results []*models.MatchResult, csvFile string) error {
	if results == nil {
		return fmt.Errorf("cannot write nil results to CSV")
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(results)},
	).Info("Writing match results to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- path comes from CLI flags
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]resultRow, 0, len(results))
	for _, r := range results {
		row := resultRow{
			TransactionID: r.Transaction.ID,
			Date:          r.Transaction.Date.String(),
			Amount:        r.Transaction.Amount.StringFixed(2),
			Description:   r.Transaction.Description,
			AutoMatch:     r.AutoMatch,
			IsMatched:     r.IsMatched,
			Suggestions:   len(r.Candidates),
		}
		if best := r.Best(); best != nil {
			row.BestExpenseID = best.Expense.ID
			row.BestVendor = best.Expense.Vendor
			row.Confidence = fmt.Sprintf("%.4f", best.Confidence)
			row.Reasons = strings.Join(best.Reasons, "; ")
		}
		rows = append(rows, row)
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
	).Info("Successfully wrote match results")
	return nil
}
