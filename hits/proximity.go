package hits

import (
	"math"

	"github.com/gcbaptista/go-hit-matcher/internal/errors"
)

// Proximity finds hits where NUnique distinct terms occur within Window
// positions of the first token of the hit.
//
// When the stream carries Sequence slots, admitting a token that starts or
// continues a sequence also captures the rest of that sequence.
type Proximity struct {
	NUnique     int     // number of distinct terms a hit needs
	Window      float64 // maximum position distance from the anchor token
	Directed    bool    // terms must appear in increasing term index order
	FeatureMode bool    // mark every matching token with 1 instead of enumerating hits
}

// Validate implements Matcher. Terms must be query term indices 1..NUnique.
func (p Proximity) Validate(s *Stream) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if p.NUnique < 1 {
		return errors.NewValidationError("n_unique", "must be at least 1")
	}
	if p.Window < 0 || math.IsNaN(p.Window) {
		return errors.NewValidationError("window", "must be a non-negative number")
	}
	return s.validateTermRange(p.NUnique)
}

// Match implements Matcher.
func (p Proximity) Match(s *Stream) (*Result, error) {
	if err := p.Validate(s); err != nil {
		return nil, err
	}

	n := s.Len()
	out := make([]int, n)
	tr := newTracker()
	hitID := 1
	count := 0

	for i := 0; i < n; i++ {
		for replay := true; replay; {
			replay = false
			p.scan(s, i, out, tr)

			if tr.size() == p.NUnique {
				newAssign := tr.commit(out, hitID)
				count++
				if !p.FeatureMode {
					hitID++
					// a reusable anchor is retried until it yields nothing new
					replay = s.Replace[i] && newAssign
				}
			}
			tr.reset()
		}
	}

	return &Result{HitIDs: out, Count: count}, nil
}

// scan fills tr with the tokens reachable from anchor i.
func (p Proximity) scan(s *Stream, i int, out []int, tr *tracker) {
	n := s.Len()
	for iw := i; iw < n; iw++ {
		if s.Context[iw] != s.Context[i] {
			break
		}
		if s.Position[iw]-s.Position[i] > p.Window {
			break
		}
		if s.useSubcontext() && s.Subcontext[iw] != s.Subcontext[i] {
			break
		}

		consume := !s.Replace[iw] && !p.FeatureMode
		term := s.Term[iw]
		if consume {
			if out[iw] > 0 || tr.has(term) {
				continue
			}
		}

		if p.Directed && term > tr.size()+1 {
			continue
		}

		tr.add(term, iw)
		if s.useSequence() && s.Sequence[iw] != NoSequence {
			tr.add(term, expandSequence(s, iw)...)
		}

		if consume && tr.size() == p.NUnique {
			break
		}
	}
}

// expandSequence walks forward from start while the following tokens continue
// the same sequence: the position advances by 0 or 1, the sequence slot by
// exactly 1, and the term stays the same. The window is not checked, and
// Validate has already rejected sequences that cross a context.
func expandSequence(s *Stream, start int) []int {
	var members []int
	lag := start
	for si := start + 1; si < s.Len() && s.continuesSequence(lag, si); si++ {
		members = append(members, si)
		lag = si
	}
	return members
}
