// Package typoutil decides whether a document token is an acceptable spelling
// of a query word, using the Damerau-Levenshtein edit distance.
package typoutil

import "unicode/utf8"

// Tolerance configures typo matching. The number of typos a query word may
// carry grows with its length and is capped by MaxTypos.
type Tolerance struct {
	MaxTypos             int // 0 disables typo matching
	MinWordSizeFor1Typo  int // Minimum word length to allow 1 typo (e.g., 4)
	MinWordSizeFor2Typos int // Minimum word length to allow 2 typos (e.g., 7)
}

// AllowedTypos returns how many typos word may carry.
func (tol Tolerance) AllowedTypos(word string) int {
	size := utf8.RuneCountInString(word)

	allowed := 0
	switch {
	case size >= tol.MinWordSizeFor2Typos:
		allowed = 2
	case size >= tol.MinWordSizeFor1Typo:
		allowed = 1
	}
	return min(allowed, tol.MaxTypos)
}

// Matches reports whether token equals word or lies within the typos allowed
// for word.
func (tol Tolerance) Matches(word, token string) bool {
	if word == token {
		return true
	}
	allowed := tol.AllowedTypos(word)
	if allowed == 0 {
		return false
	}
	return CalculateDamerauLevenshteinDistanceWithLimit(word, token, allowed) <= allowed
}

// CalculateDamerauLevenshteinDistanceWithLimit calculates Damerau-Levenshtein distance with early termination
// This includes transposition operations in addition to insertion, deletion, and substitution
// Returns maxDistance + 1 if the actual distance exceeds maxDistance (for performance)
func CalculateDamerauLevenshteinDistanceWithLimit(a, b string, maxDistance int) int {
	runesA := []rune(a)
	runesB := []rune(b)

	lenA := len(runesA)
	lenB := len(runesB)

	// Early termination: if length difference > maxDistance, return early
	lengthDiff := lenA - lenB
	if lengthDiff < 0 {
		lengthDiff = -lengthDiff
	}
	if lengthDiff > maxDistance {
		return maxDistance + 1
	}

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// Three rows: i-2 (for transpositions), i-1 and the current one
	prevPrevRow := make([]int, lenB+1)
	prevRow := make([]int, lenB+1)
	currRow := make([]int, lenB+1)

	for j := 0; j <= lenB; j++ {
		prevRow[j] = j
	}

	for i := 1; i <= lenA; i++ {
		currRow[0] = i
		minInRow := i

		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}

			currRow[j] = min(
				prevRow[j]+1,      // deletion
				currRow[j-1]+1,    // insertion
				prevRow[j-1]+cost, // substitution
			)

			// Transposition of two adjacent characters
			if i > 1 && j > 1 &&
				runesA[i-1] == runesB[j-2] &&
				runesA[i-2] == runesB[j-1] {
				currRow[j] = min(currRow[j], prevPrevRow[j-2]+cost)
			}

			minInRow = min(minInRow, currRow[j])
		}

		// The distance can only grow from here
		if minInRow > maxDistance {
			return maxDistance + 1
		}

		prevPrevRow, prevRow, currRow = prevRow, currRow, prevPrevRow
	}

	return prevRow[lenB]
}
