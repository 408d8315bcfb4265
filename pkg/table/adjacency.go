package table

import "slices"

// roundAdjacency returns the adjacency sets of a round table: each position
// is adjacent to its two rotational neighbors. Tables with one seat have no
// adjacency; with two seats the single neighbor appears once.
func roundAdjacency(count int) [][]int {
	adj := make([][]int, count)
	if count < 2 {
		return adj
	}
	for p := 0; p < count; p++ {
		set := newAdjSet()
		set.add(mod(p-1, count), p)
		set.add(mod(p+1, count), p)
		adj[p] = set.sorted()
	}
	return adj
}

// rectangleAdjacency returns the adjacency sets of a rectangular table as the
// union of three neighbor kinds:
//
//   - side: the immediate neighbors within the same side, never wrapping past
//     a side boundary
//   - opposite: the facing seat on the opposite side, only when both sides
//     seat the same number of people (see [Sides.Opposite])
//   - corner: the first or last seat of a side is adjacent to the nearest
//     seat of the perpendicular side meeting at that corner, when that side
//     has at least one seat
//
// The result is symmetric by construction: every link is inserted in both
// directions.
func rectangleAdjacency(s Sides) [][]int {
	count := s.Total()
	sets := make([]*adjSet, count)
	for p := range sets {
		sets[p] = newAdjSet()
	}
	link := func(a, b int) {
		sets[a].add(b, a)
		sets[b].add(a, b)
	}

	c := s.counts()
	for side := 0; side < 4; side++ {
		first := s.start(side)
		for i := 0; i+1 < c[side]; i++ {
			link(first+i, first+i+1)
		}
	}

	for p := 0; p < count; p++ {
		if q := s.Opposite(p); q >= 0 {
			link(p, q)
		}
	}

	// Corners in walk order: the last seat of each side meets the first seat
	// of the next side around the table.
	for side := 0; side < 4; side++ {
		next := (side + 1) % 4
		if c[side] == 0 || c[next] == 0 {
			continue
		}
		link(s.start(side)+c[side]-1, s.start(next))
	}

	adj := make([][]int, count)
	for p, set := range sets {
		adj[p] = set.sorted()
	}
	return adj
}

// adjSet is a small deduplicating position set.
type adjSet struct {
	seen map[int]struct{}
}

func newAdjSet() *adjSet { return &adjSet{seen: make(map[int]struct{})} }

// add inserts pos unless it equals self (a seat is never its own neighbor).
func (s *adjSet) add(pos, self int) {
	if pos == self {
		return
	}
	s.seen[pos] = struct{}{}
}

func (s *adjSet) sorted() []int {
	out := make([]int, 0, len(s.seen))
	for p := range s.seen {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
