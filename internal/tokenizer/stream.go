package tokenizer

import (
	"fmt"

	"github.com/gcbaptista/go-hit-matcher/hits"
	"github.com/gcbaptista/go-hit-matcher/internal/errors"
	"github.com/gcbaptista/go-hit-matcher/model"
)

// Token locates one stream entry in the original documents.
type Token struct {
	Document int    // index into the documents slice
	Offset   int    // token offset inside the document
	Text     string // normalized token
}

// TokenStream is a hits.Stream built from raw documents together with the
// document location of every entry.
type TokenStream struct {
	Stream *hits.Stream
	Tokens []Token
	// Unique is the number of distinct terms (proximity and and) or the
	// phrase length (sequence).
	Unique int
}

// WordMatcher reports whether a document token is an acceptable occurrence
// of a query word.
type WordMatcher func(word, token string) bool

func exactWord(word, token string) bool {
	return word == token
}

// slot is the term assignment of one document token.
type slot struct {
	term int // 1-based, 0 when the token matches nothing
	seq  int // position inside a phrase, hits.NoSequence for single words
}

// BuildStream tokenizes documents and keeps only the tokens that match a
// query term. Each document is its own context and token offsets are used as
// positions.
//
// For the proximity and and matchers every term gets its own index. A phrase
// only matches where all its words occur contiguously, and its tokens carry
// sequence slots so a proximity hit captures the whole phrase. For the
// sequence matcher exactly one term is expected and word k of it is term k+1.
// Tokens are compared to query words with equal, or exactly when it is nil.
func BuildStream(docs []model.Document, terms []string, matcher model.MatcherType, equal WordMatcher) (*TokenStream, error) {
	if len(terms) == 0 {
		return nil, errors.NewValidationError("terms", "at least one term is required")
	}
	phrases := TokenizeTerms(terms)
	for i, p := range phrases {
		if len(p) == 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("terms[%d]", i), "term has no searchable tokens")
		}
	}

	if equal == nil {
		equal = exactWord
	}

	var assign func(tokens []string) []slot
	unique := len(phrases)
	switch matcher {
	case model.MatcherProximity, model.MatcherAND:
		assign = func(tokens []string) []slot { return assignTerms(tokens, phrases, equal) }
	case model.MatcherSequence:
		if len(phrases) != 1 {
			return nil, errors.NewValidationError("terms", "the sequence matcher takes exactly one phrase")
		}
		unique = len(phrases[0])
		assign = func(tokens []string) []slot { return assignPhraseWords(tokens, phrases[0], equal) }
	default:
		return nil, errors.NewUnknownMatcherError(string(matcher))
	}

	ts := &TokenStream{Stream: &hits.Stream{}, Unique: unique}
	useSequence := false
	for d, doc := range docs {
		tokens := Tokenize(doc.Text)
		for offset, s := range assign(tokens) {
			if s.term == 0 {
				continue
			}
			if s.seq != hits.NoSequence {
				useSequence = true
			}
			ts.Stream.Context = append(ts.Stream.Context, d+1)
			ts.Stream.Position = append(ts.Stream.Position, float64(offset))
			ts.Stream.Term = append(ts.Stream.Term, s.term)
			ts.Stream.Sequence = append(ts.Stream.Sequence, s.seq)
			ts.Stream.Replace = append(ts.Stream.Replace, false)
			ts.Tokens = append(ts.Tokens, Token{Document: d, Offset: offset, Text: tokens[offset]})
		}
	}
	if !useSequence {
		ts.Stream.Sequence = nil
	}
	return ts, nil
}

// assignTerms gives every token the first term (in query order) it matches.
func assignTerms(tokens []string, phrases [][]string, equal WordMatcher) []slot {
	slots := make([]slot, len(tokens))
	for t, phrase := range phrases {
		for start := 0; start+len(phrase) <= len(tokens); start++ {
			if !phraseAt(tokens, phrase, start, slots, equal) {
				continue
			}
			for k := range phrase {
				seq := hits.NoSequence
				if len(phrase) > 1 {
					seq = k + 1
				}
				slots[start+k] = slot{term: t + 1, seq: seq}
			}
		}
	}
	return slots
}

// phraseAt reports whether phrase occurs at start over unassigned tokens.
func phraseAt(tokens, phrase []string, start int, slots []slot, equal WordMatcher) bool {
	for k, word := range phrase {
		if slots[start+k].term != 0 || !equal(word, tokens[start+k]) {
			return false
		}
	}
	return true
}

// assignPhraseWords numbers the phrase words as terms 1..m. Tokens inside a
// full occurrence of the phrase take the term of the word they stand for, so
// a phrase that repeats a word still forms a complete run. Any other token
// equal to a phrase word takes the first such word.
func assignPhraseWords(tokens, phrase []string, equal WordMatcher) []slot {
	slots := make([]slot, len(tokens))
	for start := 0; start+len(phrase) <= len(tokens); start++ {
		if !phraseAt(tokens, phrase, start, slots, equal) {
			continue
		}
		for k := range phrase {
			slots[start+k] = slot{term: k + 1, seq: hits.NoSequence}
		}
	}
	for i, tok := range tokens {
		if slots[i].term != 0 {
			continue
		}
		for k, word := range phrase {
			if equal(word, tok) {
				slots[i] = slot{term: k + 1, seq: hits.NoSequence}
				break
			}
		}
	}
	return slots
}
