package table

import (
	"slices"
	"testing"
)

func TestGenerateOrdering_SequentialClockwiseRound8(t *testing.T) {
	numbers, err := GenerateOrdering(8, Clockwise, PatternSequential, 0, nil)
	if err != nil {
		t.Fatalf("GenerateOrdering() error = %v", err)
	}
	want := []int{1, 2, 3, 4, 5, 6, 7, 8}
	if !slices.Equal(numbers, want) {
		t.Errorf("GenerateOrdering() = %v, want %v", numbers, want)
	}
}

func TestGenerateOrdering_SequentialCounterClockwise(t *testing.T) {
	numbers, err := GenerateOrdering(4, CounterClockwise, PatternSequential, 0, nil)
	if err != nil {
		t.Fatalf("GenerateOrdering() error = %v", err)
	}
	// Walking 0, 3, 2, 1 assigns 1, 2, 3, 4.
	want := []int{1, 4, 3, 2}
	if !slices.Equal(numbers, want) {
		t.Errorf("GenerateOrdering() = %v, want %v", numbers, want)
	}
}

func TestGenerateOrdering_SequentialStartOffset(t *testing.T) {
	numbers, err := GenerateOrdering(4, Clockwise, PatternSequential, 2, nil)
	if err != nil {
		t.Fatalf("GenerateOrdering() error = %v", err)
	}
	want := []int{3, 4, 1, 2}
	if !slices.Equal(numbers, want) {
		t.Errorf("GenerateOrdering() = %v, want %v", numbers, want)
	}
}

func TestGenerateOrdering_AlternatingRound6(t *testing.T) {
	numbers, err := GenerateOrdering(6, Clockwise, PatternAlternating, 0, nil)
	if err != nil {
		t.Fatalf("GenerateOrdering() error = %v", err)
	}
	// Evens walk clockwise from the start, odds counter-clockwise:
	// position 0 -> 1, 1 -> 2, 5 -> 3, 2 -> 4, 4 -> 5, 3 -> 6.
	want := []int{1, 2, 4, 6, 5, 3}
	if !slices.Equal(numbers, want) {
		t.Errorf("GenerateOrdering() = %v, want %v", numbers, want)
	}
}

func TestGenerateOrdering_OppositeRound6(t *testing.T) {
	numbers, err := GenerateOrdering(6, Clockwise, PatternOpposite, 0, nil)
	if err != nil {
		t.Fatalf("GenerateOrdering() error = %v", err)
	}
	// 0 -> 1, opposite 3 -> 2, next unvisited 1 -> 3, opposite 4 -> 4,
	// next 2 -> 5, opposite 5 -> 6.
	want := []int{1, 3, 5, 2, 4, 6}
	if !slices.Equal(numbers, want) {
		t.Errorf("GenerateOrdering() = %v, want %v", numbers, want)
	}
}

func TestGenerateOrdering_OppositeRectangleUnevenSides(t *testing.T) {
	sides := Sides{Top: 2, Bottom: 2, Right: 1}
	numbers, err := GenerateOrdering(sides.Total(), Clockwise, PatternOpposite, 0, &sides)
	if err != nil {
		t.Fatalf("GenerateOrdering() error = %v", err)
	}
	// Positions: top[0]=0 top[1]=1 right[0]=2 bottom[0]=3 bottom[1]=4.
	// 0 -> 1, opposite bottom[1]=4 -> 2, next 1 -> 3, opposite bottom[0]=3 -> 4,
	// right seat 2 has no opposite and is filled last -> 5.
	want := []int{1, 3, 5, 4, 2}
	if !slices.Equal(numbers, want) {
		t.Errorf("GenerateOrdering() = %v, want %v", numbers, want)
	}
}

func TestGenerateOrdering_OppositeStartOnUnpairedSeat(t *testing.T) {
	sides := Sides{Top: 2, Bottom: 2, Right: 1}
	numbers, err := GenerateOrdering(sides.Total(), Clockwise, PatternOpposite, 2, &sides)
	if err != nil {
		t.Fatalf("GenerateOrdering() error = %v", err)
	}
	// Start at right[0]=2, which has no opposite, so seat 1 stands alone.
	// The walk continues: bottom[0]=3 -> 2 pairs top[1]=1 -> 3, then
	// bottom[1]=4 -> 4 pairs top[0]=0 -> 5.
	want := []int{5, 3, 1, 2, 4}
	if !slices.Equal(numbers, want) {
		t.Errorf("GenerateOrdering() = %v, want %v", numbers, want)
	}
}

func TestGenerateOrdering_Bijection(t *testing.T) {
	counts := []int{2, 3, 4, 8, 13}
	patterns := []Pattern{PatternSequential, PatternAlternating, PatternOpposite}
	directions := []Direction{Clockwise, CounterClockwise}

	for _, count := range counts {
		for _, pattern := range patterns {
			for _, dir := range directions {
				numbers, err := GenerateOrdering(count, dir, pattern, count/3, nil)
				if err != nil {
					t.Fatalf("GenerateOrdering(%d, %v, %v) error = %v", count, dir, pattern, err)
				}
				seen := make(map[int]bool)
				for _, n := range numbers {
					if n < 1 || n > count {
						t.Errorf("GenerateOrdering(%d, %v, %v) produced number %d out of range", count, dir, pattern, n)
					}
					if seen[n] {
						t.Errorf("GenerateOrdering(%d, %v, %v) produced duplicate number %d", count, dir, pattern, n)
					}
					seen[n] = true
				}
				if len(seen) != count {
					t.Errorf("GenerateOrdering(%d, %v, %v) covered %d numbers, want %d", count, dir, pattern, len(seen), count)
				}
			}
		}
	}
}

func TestGenerateOrdering_BijectionRectangle(t *testing.T) {
	configs := []Sides{
		{Top: 3, Bottom: 3},
		{Top: 3, Bottom: 2, Left: 1, Right: 1},
		{Top: 4, Bottom: 4, Left: 2, Right: 2},
		{Right: 5},
	}
	for _, sides := range configs {
		for _, pattern := range []Pattern{PatternSequential, PatternAlternating, PatternOpposite} {
			count := sides.Total()
			numbers, err := GenerateOrdering(count, Clockwise, pattern, 0, &sides)
			if err != nil {
				t.Fatalf("GenerateOrdering(%+v, %v) error = %v", sides, pattern, err)
			}
			seen := make(map[int]bool)
			for _, n := range numbers {
				seen[n] = true
			}
			if len(seen) != count || !seen[1] || !seen[count] {
				t.Errorf("GenerateOrdering(%+v, %v) = %v, not a permutation of 1..%d", sides, pattern, numbers, count)
			}
		}
	}
}

func TestGenerateOrdering_Errors(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		start   int
		dir     Direction
		pattern Pattern
	}{
		{"zero count", 0, 0, Clockwise, PatternSequential},
		{"start out of range", 4, 4, Clockwise, PatternSequential},
		{"negative start", 4, -1, Clockwise, PatternSequential},
		{"bad direction", 4, 0, Direction(0), PatternSequential},
		{"bad pattern", 4, 0, Clockwise, Pattern("spiral")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GenerateOrdering(tt.count, tt.dir, tt.pattern, tt.start, nil); err == nil {
				t.Error("GenerateOrdering() error = nil, want error")
			}
		})
	}
}
