package hits

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hmerrors "github.com/gcbaptista/go-hit-matcher/internal/errors"
)

func TestSequence_Match(t *testing.T) {
	tests := []struct {
		name   string
		stream *Stream
		length int
		want   []int
		count  int
	}{
		{
			name:   "two consecutive runs",
			stream: newStream([]float64{1, 2, 3, 4, 5, 6}, []int{1, 2, 3, 1, 2, 3}),
			length: 3,
			want:   []int{1, 1, 1, 2, 2, 2},
			count:  2,
		},
		{
			name:   "gap between tokens breaks the run",
			stream: newStream([]float64{1, 2, 4}, []int{1, 2, 3}),
			length: 3,
			want:   []int{0, 0, 0},
		},
		{
			name:   "tied positions are allowed",
			stream: newStream([]float64{1, 1, 2}, []int{1, 2, 3}),
			length: 3,
			want:   []int{1, 1, 1},
			count:  1,
		},
		{
			name:   "terms out of order",
			stream: newStream([]float64{1, 2, 3}, []int{2, 1, 3}),
			length: 3,
			want:   []int{0, 0, 0},
		},
		{
			name: "context break",
			stream: &Stream{
				Context:  []int{1, 1, 2},
				Position: []float64{1, 2, 3},
				Term:     []int{1, 2, 3},
				Replace:  make([]bool, 3),
			},
			length: 3,
			want:   []int{0, 0, 0},
		},
		{
			name: "subcontext break",
			stream: &Stream{
				Context:    []int{1, 1},
				Subcontext: []int{1, 2},
				Position:   []float64{1, 2},
				Term:       []int{1, 2},
				Replace:    make([]bool, 2),
			},
			length: 2,
			want:   []int{0, 0},
		},
		{
			name:   "run truncated by the end of the stream",
			stream: newStream([]float64{1, 2}, []int{1, 2}),
			length: 3,
			want:   []int{0, 0},
		},
		{
			name:   "assigned tokens are not reused",
			stream: newStream([]float64{1, 2, 3, 4}, []int{1, 2, 3, 3}),
			length: 3,
			want:   []int{1, 1, 1, 0},
			count:  1,
		},
		{
			name:   "run found after a failed start",
			stream: newStream([]float64{1, 2, 3, 4}, []int{1, 1, 2, 3}),
			length: 3,
			want:   []int{0, 1, 1, 1},
			count:  1,
		},
		{
			name:   "single token sequence",
			stream: newStream([]float64{1, 2, 3}, []int{1, 2, 1}),
			length: 1,
			want:   []int{1, 0, 2},
			count:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Sequence{Length: tt.length}.Match(tt.stream)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.HitIDs)
			assert.Equal(t, tt.count, result.Count)
		})
	}
}

func TestSequence_HitShape(t *testing.T) {
	s := newStream(
		[]float64{1, 2, 3, 3, 4, 5, 7, 8, 9},
		[]int{1, 2, 3, 1, 2, 3, 1, 2, 3},
	)
	result, err := Sequence{Length: 3}.Match(s)
	require.NoError(t, err)

	members := make(map[int][]int)
	for i, id := range result.HitIDs {
		if id > 0 {
			members[id] = append(members[id], i)
		}
	}
	require.Len(t, members, result.Count)

	for id, idx := range members {
		require.Len(t, idx, 3, "hit %d", id)
		for k, i := range idx {
			assert.Equal(t, k+1, s.Term[i], "hit %d", id)
			assert.LessOrEqual(t, s.Position[i]-s.Position[idx[0]], float64(k), "hit %d", id)
		}
	}
}

func TestSequence_InvalidLength(t *testing.T) {
	_, err := Sequence{Length: 0}.Match(newStream([]float64{1}, []int{1}))
	assert.True(t, errors.Is(err, hmerrors.ErrInvalidInput))
}

func TestMatchers_Idempotent(t *testing.T) {
	// tokens that already carry a hit id are dropped by the caller before a
	// second pass; the remainder must yield no further hits
	s := newStream([]float64{1, 2, 3, 4, 5}, []int{1, 2, 1, 2, 1})
	matchers := []Matcher{
		Proximity{NUnique: 2, Window: 3},
		AND{NUnique: 2},
		Sequence{Length: 2},
	}

	for _, m := range matchers {
		first, err := m.Match(s)
		require.NoError(t, err)

		var keep []int
		for i, id := range first.HitIDs {
			if id == 0 {
				keep = append(keep, i)
			}
		}
		rest := newStream(make([]float64, len(keep)), make([]int, len(keep)))
		for j, i := range keep {
			rest.Position[j] = s.Position[i]
			rest.Term[j] = s.Term[i]
		}

		second, err := m.Match(rest)
		require.NoError(t, err)
		assert.Equal(t, 0, second.Count)
	}
}
