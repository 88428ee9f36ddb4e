// Package suggest picks the closest declared name for a typo diagnostic.
package suggest

import "strings"

// Closest returns the candidate most similar to name, or "" when no candidate
// is close enough to be a plausible typo. Similarity is the length of the
// longest common subsequence, compared case-insensitively; a candidate
// qualifies when the subsequence covers more than half of both names.
func Closest(name string, candidates []string) string {
	best := ""
	bestLen := 0

	for _, cand := range candidates {
		n := subseqLen(strings.ToLower(name), strings.ToLower(cand))
		if 2*n <= len(name) || 2*n <= len(cand) {
			continue
		}
		if n > bestLen {
			best, bestLen = cand, n
		}
	}
	return best
}

// subseqLen returns the length of the longest common subsequence of a and b.
func subseqLen(a, b string) int {
	// One-row dynamic programming over the standard LCS recurrence.
	row := make([]int, len(b)+1)
	for i := range len(a) {
		prev := 0 // row[j] from the previous iteration of i
		for j := range len(b) {
			cur := row[j+1]
			if a[i] == b[j] {
				row[j+1] = prev + 1
			} else if row[j] > row[j+1] {
				row[j+1] = row[j]
			}
			prev = cur
		}
	}
	return row[len(b)]
}
