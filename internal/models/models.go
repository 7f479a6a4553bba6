// Package models provides the data structures used throughout the application.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BankTransaction represents one line item from an imported bank statement
// awaiting reconciliation. Immutable once imported.
type BankTransaction struct {
	ID          string          `csv:"id" json:"id"`
	Amount      decimal.Decimal `csv:"amount" json:"amount"`         // Signed: debits negative, credits positive
	Description string          `csv:"description" json:"description"`
	Date        Date            `csv:"date" json:"date"`
}

// ExpenseRecord is an internally submitted expense maintained by the
// expense-tracking subsystem. The matcher only reads it.
type ExpenseRecord struct {
	ID          string          `csv:"id" json:"id"`
	Amount      decimal.Decimal `csv:"amount" json:"amount"`
	Vendor      string          `csv:"vendor" json:"vendor"`
	Description string          `csv:"description" json:"description,omitempty"` // Optional
	Date        Date            `csv:"date" json:"date"`
	Category    string          `csv:"category" json:"category"`
}

// HasVendor reports whether the record carries a usable vendor name.
func (e *ExpenseRecord) HasVendor() bool {
	return strings.TrimSpace(e.Vendor) != ""
}

// ComparableText returns the text to compare against a bank description:
// the expense description, falling back to the vendor name when no
// description was submitted.
func (e *ExpenseRecord) ComparableText() string {
	if strings.TrimSpace(e.Description) != "" {
		return e.Description
	}
	return e.Vendor
}

// ParseAmount parses a string amount to decimal.Decimal, tolerating common
// currency symbols and separators. Unparseable input yields decimal.Zero.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.ReplaceAll(amountStr, ",", ".")
	amount = strings.TrimSpace(amount)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "USD", "")
	amount = strings.ReplaceAll(amount, "$", "")
	amount = strings.ReplaceAll(amount, "'", "")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
