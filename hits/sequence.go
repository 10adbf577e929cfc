package hits

import (
	"github.com/gcbaptista/go-hit-matcher/internal/errors"
)

// Sequence finds contiguous runs of Length tokens whose term indices are
// exactly 1..Length in order, inside one context and without positional gaps.
// Tokens may share a position (a gap of 0), but a run never skips one.
type Sequence struct {
	Length int
}

// Validate implements Matcher. Terms outside 1..Length never match, so they
// are not rejected.
func (q Sequence) Validate(s *Stream) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if q.Length < 1 {
		return errors.NewValidationError("length", "must be at least 1")
	}
	return nil
}

// Match implements Matcher.
func (q Sequence) Match(s *Stream) (*Result, error) {
	if err := q.Validate(s); err != nil {
		return nil, err
	}

	n := s.Len()
	out := make([]int, n)
	hitID := 1

	for i := 0; i+q.Length <= n; i++ {
		if !q.runAt(s, i, out) {
			continue
		}
		for k := 0; k < q.Length; k++ {
			out[i+k] = hitID
		}
		hitID++
	}

	return &Result{HitIDs: out, Count: hitID - 1}, nil
}

// runAt reports whether tokens i..i+Length-1 form a complete, unassigned run.
func (q Sequence) runAt(s *Stream, i int, out []int) bool {
	for k := 0; k < q.Length; k++ {
		j := i + k
		if out[j] > 0 {
			return false
		}
		if s.Term[j] != k+1 {
			return false
		}
		if s.Position[j]-s.Position[i] > float64(k) {
			return false
		}
		if !s.sameScope(i, j) {
			return false
		}
	}
	return true
}
