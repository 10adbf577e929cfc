package engine

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-hit-matcher/hits"
)

// span is a half-open token range [from, to).
type span struct {
	from, to int
}

// run validates the whole stream against matcher, matches it (in parallel partitions when it is
// large enough) and returns the merged result with the number of partitions.
func (e *Engine) run(ctx context.Context, matcher hits.Matcher, stream *hits.Stream) (*hits.Result, int, error) {
	if err := matcher.Validate(stream); err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	parts := partitionByContext(stream.Context, e.settings.PartitionThreshold, e.settings.Workers)
	if len(parts) == 1 {
		result, err := matcher.Match(stream)
		if err != nil {
			return nil, 0, err
		}
		return result, 1, nil
	}

	results := make([]*hits.Result, len(parts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.settings.Workers)

	for i, p := range parts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := matcher.Match(stream.Slice(p.from, p.to))
			if err != nil {
				return fmt.Errorf("partition %d [%d,%d): %w", i, p.from, p.to, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	merged := mergeResults(stream.Len(), parts, results, featureMode(matcher))
	log.Printf("Matched %d tokens in %d partitions (%d hits)", stream.Len(), len(parts), merged.Count)
	return merged, len(parts), nil
}

// partitionByContext splits contexts into contiguous spans of whole context
// runs. Hits never cross a context change, so each span can be matched on its
// own. Streams shorter than threshold stay in one span; larger streams are cut
// into roughly workers equal spans.
func partitionByContext(contexts []int, threshold, workers int) []span {
	n := len(contexts)
	if n == 0 || n < threshold || workers < 2 {
		return []span{{0, n}}
	}

	target := (n + workers - 1) / workers
	var parts []span
	from := 0
	for i := 1; i <= n; i++ {
		boundary := i == n || contexts[i] != contexts[i-1]
		if boundary && (i-from >= target || i == n) {
			parts = append(parts, span{from, i})
			from = i
		}
	}
	return parts
}

// mergeResults stitches partition results back into one result. Hit ids of
// each partition are shifted by the number of hits committed before it, which
// reproduces the numbering of a single pass. Feature mode marks are copied
// unchanged.
func mergeResults(n int, parts []span, results []*hits.Result, featureMode bool) *hits.Result {
	merged := &hits.Result{HitIDs: make([]int, n)}
	offset := 0
	for i, p := range parts {
		r := results[i]
		for j, id := range r.HitIDs {
			if id > 0 && !featureMode {
				id += offset
			}
			merged.HitIDs[p.from+j] = id
		}
		offset += r.Count
		merged.Count += r.Count
	}
	return merged
}

// featureMode reports whether matcher writes occupancy marks instead of
// enumerated hit ids.
func featureMode(matcher hits.Matcher) bool {
	switch m := matcher.(type) {
	case hits.Proximity:
		return m.FeatureMode
	case hits.AND:
		return m.FeatureMode
	}
	return false
}
