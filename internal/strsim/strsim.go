// Package strsim computes textual similarity between normalized strings using
// Levenshtein edit distance with a word-overlap boost. Edit distance alone
// penalizes reordered merchant names ("Walmart Store" vs "Store Walmart");
// the boost rewards exact shared keywords regardless of position.
package strsim

import (
	"ptofunds/reconcile/internal/normalize"
)

// Levenshtein calculates the minimum number of single-character edits
// (insertions, deletions, or substitutions) required to change one string
// into another. Two rows of the DP table are kept to save memory.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Similarity returns a score in [0,1] for two free-text strings. Both inputs
// are normalized before comparison. The base score is
// 1 - distance/max(len), boosted by up to 0.2 for exact shared words.
// Two empty strings are treated as a vacuous match and score 1.0.
func Similarity(a, b string) float64 {
	na := normalize.Clean(a)
	nb := normalize.Clean(b)

	base := levenshteinScore(na, nb)
	boost := wordOverlapBoost(na, nb)

	return min(base+boost, 1.0)
}

// levenshteinScore normalizes edit distance into [0,1].
func levenshteinScore(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}

	distance := Levenshtein(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

// wordOverlapBoost scores exact shared words (length > 2) between the two
// strings, scaled to at most 0.2.
func wordOverlapBoost(a, b string) float64 {
	wordsA := normalize.SignificantTokens(a)
	wordsB := normalize.SignificantTokens(b)

	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0.0
	}

	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}

	shared := 0
	seen := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := setA[w]; ok {
			shared++
		}
	}

	overlap := float64(shared) / float64(max(len(wordsA), len(wordsB)))
	return 0.2 * overlap
}
