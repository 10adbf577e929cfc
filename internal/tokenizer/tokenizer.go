package tokenizer

import (
	"regexp"
	"strings"
)

// nonAlphanumericRegex matches sequences of non-alphanumeric characters.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// acronymRegex handles cases like "HTTPRequest" -> "HTTP Request"
var acronymRegex = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)

// camelCaseRegex handles cases like "theOffice" -> "the Office" or "myAPI" -> "my API"
var camelCaseRegex = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// Tokenize converts a string into a slice of tokens.
// It splits camel/PascalCase, lowercases the string, and splits by non-alphanumeric characters.
func Tokenize(text string) []string {
	processedText := acronymRegex.ReplaceAllString(text, "$1 $2")
	processedText = camelCaseRegex.ReplaceAllString(processedText, "$1 $2")

	lowerText := strings.ToLower(processedText)

	split := nonAlphanumericRegex.Split(lowerText, -1)

	tokens := make([]string, 0) // Initialize as empty slice, not nil
	for _, s := range split {
		if s != "" {
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// TokenizeTerms tokenizes every query term. A term with more than one token is
// a phrase.
func TokenizeTerms(terms []string) [][]string {
	phrases := make([][]string, len(terms))
	for i, term := range terms {
		phrases[i] = Tokenize(term)
	}
	return phrases
}
