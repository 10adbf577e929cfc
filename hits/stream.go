// Package hits finds occurrences of multi-term query patterns in a stream of
// tokens. A stream is a set of aligned attribute arrays (one entry per token)
// and every matcher returns a hit id per token, 0 meaning the token is not
// part of any hit.
package hits

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gcbaptista/go-hit-matcher/internal/errors"
)

// NoSequence marks a token that is not part of a pre-identified sequence.
const NoSequence = 0

// Stream holds the token attributes a matcher scans. All non-empty arrays
// must have the same length as Position.
type Stream struct {
	Context    []int     // document or sentence id; hits never cross a context boundary
	Subcontext []int     // optional finer boundary, disabled when empty
	Position   []float64 // token position used for window and gap checks
	Term       []int     // query term index of the token (1-based)
	Sequence   []int     // optional 1-based slot in a pre-identified sequence, NoSequence otherwise
	Group      []string  // optional hierarchical group id for AND matching, "" means none
	Replace    []bool    // token may be reused by more than one hit
}

// Len returns the number of tokens in the stream.
func (s *Stream) Len() int {
	return len(s.Position)
}

// Slice returns a view of tokens [from, to). Optional arrays stay empty when
// they are empty in s.
func (s *Stream) Slice(from, to int) *Stream {
	out := &Stream{
		Context:  s.Context[from:to],
		Position: s.Position[from:to],
		Term:     s.Term[from:to],
		Replace:  s.Replace[from:to],
	}
	if len(s.Subcontext) > 0 {
		out.Subcontext = s.Subcontext[from:to]
	}
	if len(s.Sequence) > 0 {
		out.Sequence = s.Sequence[from:to]
	}
	if len(s.Group) > 0 {
		out.Group = s.Group[from:to]
	}
	return out
}

func (s *Stream) useSubcontext() bool {
	return len(s.Subcontext) > 0
}

func (s *Stream) useSequence() bool {
	return len(s.Sequence) > 0
}

// sameScope reports whether token j lies in the same context (and subcontext
// when used) as token i.
func (s *Stream) sameScope(i, j int) bool {
	if s.Context[j] != s.Context[i] {
		return false
	}
	if s.useSubcontext() && s.Subcontext[j] != s.Subcontext[i] {
		return false
	}
	return true
}

func (s *Stream) group(i int) string {
	if len(s.Group) == 0 {
		return ""
	}
	return s.Group[i]
}

// Validate checks that every array is aligned with Position and that no
// sequence continues across a context or subcontext boundary.
func (s *Stream) Validate() error {
	if s == nil {
		return errors.NewValidationError("stream", "stream is required")
	}
	n := len(s.Position)

	required := []struct {
		field string
		size  int
	}{
		{"context", len(s.Context)},
		{"term", len(s.Term)},
		{"replace", len(s.Replace)},
	}
	for _, r := range required {
		if r.size != n {
			return errors.NewLengthMismatchError(r.field, r.size, n)
		}
	}

	optional := []struct {
		field string
		size  int
	}{
		{"subcontext", len(s.Subcontext)},
		{"sequence", len(s.Sequence)},
		{"group", len(s.Group)},
	}
	for _, o := range optional {
		if o.size != 0 && o.size != n {
			return errors.NewLengthMismatchError(o.field, o.size, n)
		}
	}

	for i, p := range s.Position {
		if math.IsNaN(p) {
			return errors.NewValidationError("position", "position is NaN at index "+strconv.Itoa(i))
		}
	}

	if s.useSequence() {
		for i := 1; i < n; i++ {
			if s.continuesSequence(i-1, i) && !s.sameScope(i-1, i) {
				return errors.NewValidationError("sequence", "sequence continues across a context boundary at index "+strconv.Itoa(i))
			}
		}
	}
	return nil
}

// continuesSequence reports whether token j extends the sequence of token
// lag, the rule expandSequence walks by.
func (s *Stream) continuesSequence(lag, j int) bool {
	if s.Sequence[lag] == NoSequence || s.Sequence[j] != s.Sequence[lag]+1 {
		return false
	}
	if s.Term[j] != s.Term[lag] {
		return false
	}
	gap := s.Position[j] - s.Position[lag]
	return gap >= 0 && gap <= 1
}

// validateTermRange checks that every term is a query term index in 1..limit.
func (s *Stream) validateTermRange(limit int) error {
	for i, t := range s.Term {
		if t < 1 || t > limit {
			return errors.NewValidationError("term", fmt.Sprintf("term %d at index %d is outside 1..%d", t, i, limit))
		}
	}
	return nil
}

// validateTermLabels checks that terms are positive and that the stream holds
// at most limit distinct terms.
func (s *Stream) validateTermLabels(limit int) error {
	seen := make(map[int]struct{}, limit)
	for i, t := range s.Term {
		if t < 1 {
			return errors.NewValidationError("term", fmt.Sprintf("term %d at index %d must be positive", t, i))
		}
		seen[t] = struct{}{}
		if len(seen) > limit {
			return errors.NewValidationError("term", fmt.Sprintf("term %d at index %d exceeds the %d distinct terms allowed", t, i, limit))
		}
	}
	return nil
}

// Result is the output of a matcher.
type Result struct {
	// HitIDs has one entry per token: 0 when unmatched, else the hit id.
	HitIDs []int
	// Count is the number of hits committed. In feature mode every hit is
	// written as 1, so Count may exceed the largest id.
	Count int
}

// Matcher assigns hit ids to the tokens of a stream.
type Matcher interface {
	// Validate checks the matcher parameters against s without scanning it.
	Validate(s *Stream) error
	Match(s *Stream) (*Result, error)
}
