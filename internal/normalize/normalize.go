// Package normalize cleans free-text bank descriptions and vendor names so
// the similarity scorers compare meaningful words instead of statement noise.
package normalize

import (
	"regexp"
	"strings"
)

// Bank statement codes that carry no matching signal and are stripped as
// whole words before comparison.
var transactionCodes = map[string]struct{}{
	"pos": {},
	"atm": {},
	"ach": {},
	"chk": {},
	"dep": {},
	"wd":  {},
	"tfr": {},
	"fee": {},
}

var (
	punctuationRe = regexp.MustCompile(`[^a-z0-9\s]+`)
	numericRe     = regexp.MustCompile(`^[0-9]+$`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Clean lower-cases the input, strips punctuation, removes bank transaction
// codes and standalone numeric tokens, and collapses whitespace. It is total:
// it never errors and empty input yields an empty string.
func Clean(text string) string {
	return strings.Join(Tokens(text), " ")
}

// Tokens returns the cleaned text split into words.
func Tokens(text string) []string {
	lowered := strings.ToLower(text)
	lowered = punctuationRe.ReplaceAllString(lowered, " ")
	lowered = whitespaceRe.ReplaceAllString(lowered, " ")

	var tokens []string
	for _, word := range strings.Fields(lowered) {
		if _, isCode := transactionCodes[word]; isCode {
			continue
		}
		if numericRe.MatchString(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// SignificantTokens returns the cleaned words longer than two characters.
// Short words ("of", "co", "st") match too promiscuously to carry signal.
func SignificantTokens(text string) []string {
	var tokens []string
	for _, word := range Tokens(text) {
		if len(word) > 2 {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
