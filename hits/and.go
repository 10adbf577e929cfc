package hits

import (
	"github.com/gcbaptista/go-hit-matcher/internal/errors"
)

// AND finds hits where NUnique distinct terms occur in the same context (and
// subcontext when used), with no window limit.
//
// Tokens carrying a group id let one term be satisfied by several tokens, one
// per group. Groups are compared on their shortest common prefix, so nested
// groups such as "1.2" and "1.2.3" are not counted twice.
type AND struct {
	NUnique     int
	FeatureMode bool
}

// Validate implements Matcher. Terms are positive labels and the stream may
// hold at most NUnique distinct ones, so every hit covers all of them.
func (a AND) Validate(s *Stream) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if a.NUnique < 1 {
		return errors.NewValidationError("n_unique", "must be at least 1")
	}
	return s.validateTermLabels(a.NUnique)
}

// Match implements Matcher.
func (a AND) Match(s *Stream) (*Result, error) {
	if err := a.Validate(s); err != nil {
		return nil, err
	}

	n := s.Len()
	out := make([]int, n)
	tr := newTracker()
	gt := newGroupTracker()
	hitID := 1
	count := 0

	for i := 0; i < n; i++ {
		for replay := true; replay; {
			replay = false
			a.scan(s, i, out, tr, gt)

			if tr.size() == a.NUnique {
				newAssign := tr.commit(out, hitID)
				count++
				if !a.FeatureMode {
					hitID++
					replay = s.Replace[i] && newAssign
				}
			}
			tr.reset()
			gt.reset()
		}
	}

	return &Result{HitIDs: out, Count: count}, nil
}

func (a AND) scan(s *Stream, i int, out []int, tr *tracker, gt *groupTracker) {
	n := s.Len()
	for iw := i; iw < n; iw++ {
		if !s.sameScope(i, iw) {
			break
		}

		consume := !s.Replace[iw] && !a.FeatureMode
		term := s.Term[iw]
		group := s.group(iw)
		if consume {
			if out[iw] > 0 {
				continue
			}
			if tr.has(term) {
				if group == "" || gt.covers(term, group) {
					continue
				}
			}
		}

		tr.add(term, iw)
		if group != "" {
			gt.add(term, group)
		}

		// once any group is in play the whole context is scanned
		if consume && gt.empty() && tr.size() == a.NUnique {
			break
		}
	}
}
