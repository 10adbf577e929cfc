package typoutil

import (
	"testing"
)

func TestCalculateDamerauLevenshteinDistanceWithLimit(t *testing.T) {
	tests := []struct {
		name  string
		a     string
		b     string
		limit int
		want  int
	}{
		{"both empty", "", "", 2, 0},
		{"identical", "hello", "hello", 2, 0},
		{"simple substitution", "kitten", "sitten", 2, 1},
		{"simple insertion", "apple", "applye", 2, 1},
		{"simple deletion", "banana", "banna", 2, 1},
		{"transposition counts once", "search", "saerch", 2, 1},
		{"two edits", "climate", "clmiat", 2, 2},
		{"length difference above limit", "go", "golang", 2, 3},
		{"distance above limit", "saturday", "sunday", 2, 3},
		{"unicode chars", "cliché", "cliche", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDamerauLevenshteinDistanceWithLimit(tt.a, tt.b, tt.limit)
			if got != tt.want {
				t.Errorf("CalculateDamerauLevenshteinDistanceWithLimit(%q, %q, %d) = %d, want %d", tt.a, tt.b, tt.limit, got, tt.want)
			}
		})
	}
}

func TestTolerance_Matches(t *testing.T) {
	tol := Tolerance{MaxTypos: 2, MinWordSizeFor1Typo: 4, MinWordSizeFor2Typos: 7}

	tests := []struct {
		name  string
		tol   Tolerance
		word  string
		token string
		want  bool
	}{
		{"exact match", tol, "cat", "cat", true},
		{"short words allow no typo", tol, "cat", "cut", false},
		{"one typo from four letters", tol, "pole", "pale", true},
		{"two typos need seven letters", tol, "policy", "plicyy", false},
		{"two typos from seven letters", tol, "climate", "clmiat", true},
		{"capped by MaxTypos", Tolerance{MaxTypos: 1, MinWordSizeFor1Typo: 4, MinWordSizeFor2Typos: 7}, "climate", "clmiat", false},
		{"disabled", Tolerance{MinWordSizeFor1Typo: 4, MinWordSizeFor2Typos: 7}, "pole", "pale", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tol.Matches(tt.word, tt.token); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.word, tt.token, got, tt.want)
			}
		})
	}
}
