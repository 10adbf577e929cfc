package model

// MatcherType names one of the hit matchers.
type MatcherType string

const (
	MatcherProximity MatcherType = "proximity"
	MatcherAND       MatcherType = "and"
	MatcherSequence  MatcherType = "sequence"
)

// IsValid reports whether the matcher type is supported.
func (m MatcherType) IsValid() bool {
	switch m {
	case MatcherProximity, MatcherAND, MatcherSequence:
		return true
	}
	return false
}

// TokenArrays is the JSON form of a token stream. Every non-empty array is
// index aligned with Position.
type TokenArrays struct {
	Context    []int     `json:"context"`
	Subcontext []int     `json:"subcontext,omitempty"`
	Position   []float64 `json:"position"`
	Term       []int     `json:"term"`
	Sequence   []*int    `json:"sequence,omitempty"` // null marks a token outside any sequence
	Group      []string  `json:"group,omitempty"`
	Replace    []bool    `json:"replace"`
}

// MatchRequest asks for hit ids over a prepared token stream.
type MatchRequest struct {
	Matcher     MatcherType `json:"matcher"`
	Tokens      TokenArrays `json:"tokens"`
	NUnique     int         `json:"n_unique,omitempty"` // proximity and and
	Window      *float64    `json:"window,omitempty"`   // proximity, defaults to the configured window
	Directed    bool        `json:"directed,omitempty"` // proximity
	Length      int         `json:"length,omitempty"`   // sequence
	FeatureMode bool        `json:"feature_mode,omitempty"`
}

// MatchResponse holds the hit id of every token of a MatchRequest.
type MatchResponse struct {
	MatchID    string      `json:"match_id"`
	Matcher    MatcherType `json:"matcher"`
	HitIDs     []int       `json:"hit_ids"`
	Hits       int         `json:"hits"`
	Partitions int         `json:"partitions"`
	Cached     bool        `json:"cached"`
	Took       int64       `json:"took"` // microseconds
}

// TextMatchRequest matches query terms against raw documents. Terms may be
// phrases of several words; the sequence matcher takes exactly one phrase.
type TextMatchRequest struct {
	Matcher     MatcherType `json:"matcher"`
	Documents   []Document  `json:"documents"`
	Terms       []string    `json:"terms"`
	Window      *float64    `json:"window,omitempty"`
	Directed    bool        `json:"directed,omitempty"`
	FeatureMode bool        `json:"feature_mode,omitempty"`
	MaxTypos    int         `json:"max_typos,omitempty"` // 0 to 2, scaled down for short query words
}

// TokenHit is one token taking part in a hit.
type TokenHit struct {
	Offset int    `json:"offset"` // token offset inside the document
	Token  string `json:"token"`
	Term   int    `json:"term"`
}

// DocumentHit groups the tokens of one hit inside a document.
type DocumentHit struct {
	HitID  int        `json:"hit_id"`
	Tokens []TokenHit `json:"tokens"`
}

// DocumentHits lists the hits found in one document.
type DocumentHits struct {
	DocumentID string        `json:"documentID"`
	Hits       []DocumentHit `json:"hits"`
}

// TextMatchResponse is the result of a TextMatchRequest.
type TextMatchResponse struct {
	MatchID   string         `json:"match_id"`
	Matcher   MatcherType    `json:"matcher"`
	Documents []DocumentHits `json:"documents"`
	Hits      int            `json:"hits"`
	Took      int64          `json:"took"` // microseconds
}

// BatchMatchRequest runs several match requests as one background job.
type BatchMatchRequest struct {
	Label    string         `json:"label,omitempty"`
	Requests []MatchRequest `json:"requests"`
}
