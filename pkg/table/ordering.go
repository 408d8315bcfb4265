package table

import "fmt"

// Pattern selects how human-facing seat numbers are assigned to positions.
type Pattern string

const (
	// PatternSequential numbers seats 1,2,3,... walking from the start
	// position in the configured direction.
	PatternSequential Pattern = "sequential"

	// PatternAlternating places seat 1 at the start, then interleaves
	// outward: even numbers proceed in the configured direction, odd numbers
	// in the other.
	PatternAlternating Pattern = "alternating"

	// PatternOpposite pairs each newly numbered seat with its geometric
	// opposite: seat 1 at the start, seat 2 opposite it, seat 3 at the next
	// unvisited position in the configured direction, seat 4 opposite that,
	// and so on. A position with no opposite, or whose opposite is already
	// numbered, takes a single number when the walk reaches it.
	PatternOpposite Pattern = "opposite"
)

// ParsePattern converts a string to a Pattern.
func ParsePattern(s string) (Pattern, error) {
	switch Pattern(s) {
	case PatternSequential, PatternAlternating, PatternOpposite:
		return Pattern(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPattern, s)
}

// GenerateOrdering assigns a seat number to every position and returns the
// result indexed by position. rect must be non-nil for rectangular tables so
// the opposite pattern can use the side-aware opposite mapping; it is ignored
// by the other patterns.
//
// The result is always a bijection onto 1..count: every number appears at
// exactly one position, for every pattern and direction combination.
func GenerateOrdering(count int, dir Direction, pattern Pattern, start int, rect *Sides) ([]int, error) {
	if count < 1 {
		return nil, ErrInvalidSeatCount
	}
	if start < 0 || start >= count {
		return nil, fmt.Errorf("%w: %d with %d seats", ErrStartOutOfRange, start, count)
	}
	if dir != Clockwise && dir != CounterClockwise {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, dir)
	}

	switch pattern {
	case PatternSequential:
		return sequentialOrdering(count, dir, start), nil
	case PatternAlternating:
		return alternatingOrdering(count, dir, start), nil
	case PatternOpposite:
		return oppositeOrdering(count, dir, start, rect), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, pattern)
}

func sequentialOrdering(count int, dir Direction, start int) []int {
	numbers := make([]int, count)
	for k := 0; k < count; k++ {
		numbers[mod(start+int(dir)*k, count)] = k + 1
	}
	return numbers
}

func alternatingOrdering(count int, dir Direction, start int) []int {
	numbers := make([]int, count)
	visited := make([]bool, count)
	numbers[start] = 1
	visited[start] = true

	// Two cursors expand outward from the start. Both step one position at a
	// time and skip already-numbered positions, which keeps the walk a
	// bijection when the two fronts meet on the far side of the table.
	fwd, bwd := start, start
	for num := 2; num <= count; num++ {
		if num%2 == 0 {
			fwd = nextUnvisited(fwd, int(dir), visited)
			numbers[fwd] = num
			visited[fwd] = true
		} else {
			bwd = nextUnvisited(bwd, -int(dir), visited)
			numbers[bwd] = num
			visited[bwd] = true
		}
	}
	return numbers
}

func oppositeOrdering(count int, dir Direction, start int, rect *Sides) []int {
	numbers := make([]int, count)
	visited := make([]bool, count)

	opposite := func(p int) int {
		if rect != nil {
			return rect.Opposite(p)
		}
		if count < 2 {
			return -1
		}
		return mod(p+count/2, count)
	}

	cursor := start
	num := 1
	for num <= count {
		p := cursor
		if visited[p] {
			p = nextUnvisited(p, int(dir), visited)
		}
		numbers[p] = num
		visited[p] = true
		num++
		cursor = p

		if num > count {
			break
		}
		if q := opposite(p); q >= 0 && !visited[q] {
			numbers[q] = num
			visited[q] = true
			num++
		}
	}
	return numbers
}

// nextUnvisited advances from pos by step (wrapping) until it reaches a
// position that has not been numbered yet. The caller guarantees one exists.
func nextUnvisited(pos, step int, visited []bool) int {
	n := len(visited)
	for {
		pos = mod(pos+step, n)
		if !visited[pos] {
			return pos
		}
	}
}
