package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-hit-matcher/hits"
	"github.com/gcbaptista/go-hit-matcher/internal/errors"
	"github.com/gcbaptista/go-hit-matcher/internal/tokenizer"
	"github.com/gcbaptista/go-hit-matcher/internal/typoutil"
	"github.com/gcbaptista/go-hit-matcher/model"
)

// MatchText tokenizes the documents of req, matches the query terms and maps
// every hit back to document tokens.
func (e *Engine) MatchText(ctx context.Context, req model.TextMatchRequest) (*model.TextMatchResponse, error) {
	startTime := time.Now()

	if len(req.Documents) == 0 {
		return nil, errors.NewValidationError("documents", "at least one document is required")
	}

	if req.MaxTypos < 0 || req.MaxTypos > 2 {
		return nil, errors.NewValidationError("max_typos", "must be between 0 and 2")
	}

	var equal tokenizer.WordMatcher
	if req.MaxTypos > 0 {
		equal = typoutil.Tolerance{
			MaxTypos:             req.MaxTypos,
			MinWordSizeFor1Typo:  e.settings.MinWordSizeFor1Typo,
			MinWordSizeFor2Typos: e.settings.MinWordSizeFor2Typos,
		}.Matches
	}

	ts, err := tokenizer.BuildStream(req.Documents, req.Terms, req.Matcher, equal)
	if err != nil {
		return nil, err
	}
	if n := ts.Stream.Len(); n > e.settings.MaxTokens {
		return nil, errors.NewValidationError("documents", "too many matching tokens")
	}

	var matcher hits.Matcher
	switch req.Matcher {
	case model.MatcherProximity:
		window := e.settings.DefaultWindow
		if req.Window != nil {
			window = *req.Window
		}
		matcher = hits.Proximity{NUnique: ts.Unique, Window: window, Directed: req.Directed, FeatureMode: req.FeatureMode}
	case model.MatcherAND:
		matcher = hits.AND{NUnique: ts.Unique, FeatureMode: req.FeatureMode}
	default:
		matcher = hits.Sequence{Length: ts.Unique}
	}

	result, _, err := e.run(ctx, matcher, ts.Stream)
	if err != nil {
		return nil, err
	}

	return &model.TextMatchResponse{
		MatchID:   uuid.New().String(),
		Matcher:   req.Matcher,
		Documents: groupByDocument(req.Documents, ts, result.HitIDs),
		Hits:      result.Count,
		Took:      time.Since(startTime).Microseconds(),
	}, nil
}

// groupByDocument collects the tokens of each hit per document, keeping hits
// in order of their first token.
func groupByDocument(docs []model.Document, ts *tokenizer.TokenStream, hitIDs []int) []model.DocumentHits {
	out := make([]model.DocumentHits, len(docs))
	index := make([]map[int]int, len(docs)) // hit id -> position in out[d].Hits
	for d, doc := range docs {
		id, _ := doc.GetDocumentID()
		out[d] = model.DocumentHits{DocumentID: id, Hits: []model.DocumentHit{}}
		index[d] = make(map[int]int)
	}

	for i, hitID := range hitIDs {
		if hitID == 0 {
			continue
		}
		tok := ts.Tokens[i]
		d := tok.Document
		pos, ok := index[d][hitID]
		if !ok {
			pos = len(out[d].Hits)
			index[d][hitID] = pos
			out[d].Hits = append(out[d].Hits, model.DocumentHit{HitID: hitID})
		}
		out[d].Hits[pos].Tokens = append(out[d].Hits[pos].Tokens, model.TokenHit{
			Offset: tok.Offset,
			Token:  tok.Text,
			Term:   ts.Stream.Term[i],
		})
	}
	return out
}
