package hits

// tracker maps a term index to the token indices currently satisfying it.
// One tracker is owned by a single matcher call and reset after every anchor.
type tracker struct {
	buckets map[int]map[int]struct{}
}

func newTracker() *tracker {
	return &tracker{buckets: make(map[int]map[int]struct{})}
}

// size is the number of distinct terms tracked.
func (t *tracker) size() int {
	return len(t.buckets)
}

func (t *tracker) has(term int) bool {
	_, ok := t.buckets[term]
	return ok
}

func (t *tracker) add(term int, positions ...int) {
	bucket, ok := t.buckets[term]
	if !ok {
		bucket = make(map[int]struct{})
		t.buckets[term] = bucket
	}
	for _, p := range positions {
		bucket[p] = struct{}{}
	}
}

// commit writes hitID to every tracked token and reports whether any of them
// had no hit id before.
func (t *tracker) commit(out []int, hitID int) bool {
	newAssign := false
	for _, bucket := range t.buckets {
		for p := range bucket {
			if out[p] == 0 {
				newAssign = true
			}
			out[p] = hitID
		}
	}
	return newAssign
}

func (t *tracker) reset() {
	clear(t.buckets)
}

// groupTracker maps a term index to the group ids already used for it.
type groupTracker struct {
	groups map[int]map[string]struct{}
}

func newGroupTracker() *groupTracker {
	return &groupTracker{groups: make(map[int]map[string]struct{})}
}

func (g *groupTracker) empty() bool {
	return len(g.groups) == 0
}

func (g *groupTracker) add(term int, group string) {
	set, ok := g.groups[term]
	if !ok {
		set = make(map[string]struct{})
		g.groups[term] = set
	}
	set[group] = struct{}{}
}

// covers reports whether group shares its shortest common prefix with any
// group already recorded for term, so "1.2" and "1.2.3" count as the same
// group while "1.2" and "1.3" do not.
func (g *groupTracker) covers(term int, group string) bool {
	for seen := range g.groups[term] {
		if sharesShortestPrefix(group, seen) {
			return true
		}
	}
	return false
}

func (g *groupTracker) reset() {
	clear(g.groups)
}

func sharesShortestPrefix(a, b string) bool {
	n := min(len(a), len(b))
	return a[:n] == b[:n]
}
