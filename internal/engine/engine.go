package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gcbaptista/go-hit-matcher/config"
	"github.com/gcbaptista/go-hit-matcher/hits"
	"github.com/gcbaptista/go-hit-matcher/internal/errors"
	"github.com/gcbaptista/go-hit-matcher/internal/jobs"
	"github.com/gcbaptista/go-hit-matcher/model"
)

// Engine runs hit matchers on behalf of the API.
// It implements the services.MatchService interface.
type Engine struct {
	settings   config.MatcherSettings
	jobManager *jobs.Manager
	cache      *lru.Cache[string, *model.MatchResponse] // nil when caching is disabled
}

// NewEngine creates a new matching engine and starts its job manager.
func NewEngine(settings config.MatcherSettings, jobWorkers int) (*Engine, error) {
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, errors.NewValidationError("settings", strings.Join(problems, "; "))
	}
	if jobWorkers < 1 {
		jobWorkers = 1
	}

	eng := &Engine{
		settings:   settings,
		jobManager: jobs.NewManager(jobWorkers),
	}
	if settings.CacheSize > 0 {
		cache, err := lru.New[string, *model.MatchResponse](settings.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		eng.cache = cache
	}

	eng.jobManager.Start()
	return eng, nil
}

// Stop shuts down the job manager, cancelling running jobs.
func (e *Engine) Stop() {
	e.jobManager.Stop()
}

// Settings returns the matcher settings in use.
func (e *Engine) Settings() config.MatcherSettings {
	return e.settings
}

// Match runs the requested matcher over the token arrays of req.
func (e *Engine) Match(ctx context.Context, req model.MatchRequest) (*model.MatchResponse, error) {
	startTime := time.Now()

	matcher, err := e.newMatcher(req)
	if err != nil {
		return nil, err
	}
	if n := len(req.Tokens.Position); n > e.settings.MaxTokens {
		return nil, errors.NewValidationError("tokens", fmt.Sprintf("stream has %d tokens, the limit is %d", n, e.settings.MaxTokens))
	}

	key := ""
	if e.cache != nil {
		key = cacheKey(matcher, req)
	}
	if key != "" {
		if cached, ok := e.cache.Get(key); ok {
			resp := *cached
			resp.HitIDs = append([]int(nil), cached.HitIDs...)
			resp.MatchID = uuid.New().String()
			resp.Cached = true
			resp.Took = time.Since(startTime).Microseconds()
			return &resp, nil
		}
	}

	stream := toStream(req.Tokens)
	result, partitions, err := e.run(ctx, matcher, stream)
	if err != nil {
		return nil, err
	}

	resp := &model.MatchResponse{
		MatchID:    uuid.New().String(),
		Matcher:    req.Matcher,
		HitIDs:     result.HitIDs,
		Hits:       result.Count,
		Partitions: partitions,
		Took:       time.Since(startTime).Microseconds(),
	}
	if e.cache != nil && key != "" {
		stored := *resp
		stored.HitIDs = append([]int(nil), resp.HitIDs...)
		e.cache.Add(key, &stored)
	}
	return resp, nil
}

// newMatcher builds the hits.Matcher described by req.
func (e *Engine) newMatcher(req model.MatchRequest) (hits.Matcher, error) {
	switch req.Matcher {
	case model.MatcherProximity:
		window := e.settings.DefaultWindow
		if req.Window != nil {
			window = *req.Window
		}
		return hits.Proximity{
			NUnique:     req.NUnique,
			Window:      window,
			Directed:    req.Directed,
			FeatureMode: req.FeatureMode,
		}, nil
	case model.MatcherAND:
		return hits.AND{NUnique: req.NUnique, FeatureMode: req.FeatureMode}, nil
	case model.MatcherSequence:
		return hits.Sequence{Length: req.Length}, nil
	default:
		return nil, errors.NewUnknownMatcherError(string(req.Matcher))
	}
}

// toStream converts the JSON token arrays into a hits.Stream.
func toStream(tokens model.TokenArrays) *hits.Stream {
	stream := &hits.Stream{
		Context:    tokens.Context,
		Subcontext: tokens.Subcontext,
		Position:   tokens.Position,
		Term:       tokens.Term,
		Group:      tokens.Group,
		Replace:    tokens.Replace,
	}
	if len(tokens.Sequence) > 0 {
		stream.Sequence = make([]int, len(tokens.Sequence))
		for i, seq := range tokens.Sequence {
			if seq != nil {
				stream.Sequence[i] = *seq
			}
		}
	}
	return stream
}

// cacheKey identifies a request by its matcher parameters and token arrays.
func cacheKey(matcher hits.Matcher, req model.MatchRequest) string {
	payload, err := json.Marshal(struct {
		Matcher string            `json:"matcher"`
		Params  hits.Matcher      `json:"params"`
		Tokens  model.TokenArrays `json:"tokens"`
	}{string(req.Matcher), matcher, req.Tokens})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
