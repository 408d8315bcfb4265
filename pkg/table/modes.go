package table

import (
	"fmt"
	"math"
)

// ModePatternKind selects how per-seat modes are generated.
type ModePatternKind string

const (
	// ModePatternUniform gives every seat the same mode.
	ModePatternUniform ModePatternKind = "uniform"
	// ModePatternAlternating alternates two modes by position parity.
	ModePatternAlternating ModePatternKind = "alternating"
	// ModePatternRepeating cycles through a mode sequence.
	ModePatternRepeating ModePatternKind = "repeating"
	// ModePatternRatio distributes modes to match target ratios, interleaved
	// rather than in blocks.
	ModePatternRatio ModePatternKind = "ratio"
	// ModePatternSpecific applies explicit position overrides onto a
	// default-filled array.
	ModePatternSpecific ModePatternKind = "specific"
)

// ModeRatio is one entry of a ratio pattern. Declaration order matters: it
// breaks ties when two modes are equally behind schedule.
type ModeRatio struct {
	Mode  Mode    `json:"mode"`
	Ratio float64 `json:"ratio"`
}

// ModePattern declaratively describes the mode of every seat at a table.
// The zero value is a uniform pattern of [ModeDefault].
type ModePattern struct {
	Kind ModePatternKind `json:"kind,omitempty"`

	// Mode is the uniform mode (uniform kind).
	Mode Mode `json:"mode,omitempty"`

	// ModeA and ModeB alternate by position parity (alternating kind).
	ModeA Mode `json:"mode_a,omitempty"`
	ModeB Mode `json:"mode_b,omitempty"`

	// Sequence cycles position i to Sequence[i % len] (repeating kind).
	Sequence []Mode `json:"sequence,omitempty"`

	// Ratios are the ratio targets in declaration order (ratio kind).
	Ratios []ModeRatio `json:"ratios,omitempty"`

	// Overrides maps positions to modes (specific kind).
	Overrides map[int]Mode `json:"overrides,omitempty"`
}

func (p ModePattern) validate(count int) error {
	switch p.Kind {
	case "", ModePatternUniform, ModePatternAlternating:
	case ModePatternRepeating:
		if len(p.Sequence) == 0 {
			return fmt.Errorf("repeating mode pattern needs a non-empty sequence")
		}
	case ModePatternRatio:
		sum := 0.0
		for _, r := range p.Ratios {
			if r.Ratio < 0 || r.Ratio > 1 {
				return fmt.Errorf("mode ratio for %q must be between 0 and 1, got %v", r.Mode, r.Ratio)
			}
			sum += r.Ratio
		}
		if sum > 1+1e-9 {
			return fmt.Errorf("mode ratios sum to %v, must not exceed 1", sum)
		}
	case ModePatternSpecific:
		for pos := range p.Overrides {
			if pos < 0 || pos >= count {
				return fmt.Errorf("mode override position %d out of range (table has %d seats)", pos, count)
			}
		}
	default:
		return fmt.Errorf("unknown mode pattern kind %q", p.Kind)
	}
	return nil
}

// GenerateModes produces the mode of every position for a table of the given
// seat count.
func GenerateModes(p ModePattern, count int) ([]Mode, error) {
	if count < 1 {
		return nil, ErrInvalidSeatCount
	}
	if err := p.validate(count); err != nil {
		return nil, err
	}

	modes := make([]Mode, count)
	switch p.Kind {
	case "", ModePatternUniform:
		m := p.Mode
		if m == "" {
			m = ModeDefault
		}
		for i := range modes {
			modes[i] = m
		}
	case ModePatternAlternating:
		a, b := p.ModeA, p.ModeB
		if a == "" {
			a = ModeDefault
		}
		if b == "" {
			b = ModeDefault
		}
		for i := range modes {
			if i%2 == 0 {
				modes[i] = a
			} else {
				modes[i] = b
			}
		}
	case ModePatternRepeating:
		for i := range modes {
			modes[i] = p.Sequence[i%len(p.Sequence)]
		}
	case ModePatternRatio:
		fillRatio(modes, p.Ratios)
	case ModePatternSpecific:
		for i := range modes {
			modes[i] = ModeDefault
		}
		for pos, m := range p.Overrides {
			modes[pos] = m
		}
	}
	return modes, nil
}

// fillRatio distributes modes so each declared mode hits its rounded target
// count, interleaved evenly rather than in blocks. At every position the mode
// that is most behind its target ratio (and still has budget) wins; ties go
// to the earliest declared entry. Seats left over after all targets round
// out are ModeDefault.
func fillRatio(modes []Mode, ratios []ModeRatio) {
	count := len(modes)

	type bucket struct {
		mode     Mode
		target   int
		assigned int
	}
	buckets := make([]*bucket, 0, len(ratios)+1)
	declared := 0
	var defaultBucket *bucket
	for _, r := range ratios {
		b := &bucket{mode: r.Mode, target: int(math.Round(r.Ratio * float64(count)))}
		buckets = append(buckets, b)
		declared += b.target
		if r.Mode == ModeDefault {
			defaultBucket = b
		}
	}

	// Rounding can overshoot the seat count (two 0.5 ratios over an odd
	// table); trim the later declarations first. Any remainder after the
	// declared targets belongs to the default mode.
	for i := len(buckets) - 1; i >= 0 && declared > count; i-- {
		trim := min(buckets[i].target, declared-count)
		buckets[i].target -= trim
		declared -= trim
	}
	if declared < count {
		if defaultBucket == nil {
			defaultBucket = &bucket{mode: ModeDefault}
			buckets = append(buckets, defaultBucket)
		}
		defaultBucket.target += count - declared
	}

	for i := 0; i < count; i++ {
		var best *bucket
		bestBehind := math.Inf(-1)
		for _, b := range buckets {
			if b.assigned >= b.target {
				continue
			}
			targetRatio := float64(b.target) / float64(count)
			assignedRatio := 0.0
			if i > 0 {
				assignedRatio = float64(b.assigned) / float64(i)
			}
			if behind := targetRatio - assignedRatio; behind > bestBehind {
				best, bestBehind = b, behind
			}
		}
		modes[i] = best.mode
		best.assigned++
	}
}

// RescaleModes maps an existing mode assignment onto a table with a new seat
// count using nearest-index resampling: position i of the new array takes the
// mode at source index round(i/(newCount-1) * (oldCount-1)). This is used
// when a table's seat count changes but the old distribution should be
// approximately preserved.
func RescaleModes(existing []Mode, newCount int) []Mode {
	if newCount < 1 {
		return nil
	}
	modes := make([]Mode, newCount)
	if len(existing) == 0 {
		for i := range modes {
			modes[i] = ModeDefault
		}
		return modes
	}
	for i := range modes {
		src := 0
		if newCount > 1 {
			src = int(math.Round(float64(i) / float64(newCount-1) * float64(len(existing)-1)))
		}
		if src < 0 {
			src = 0
		}
		if src >= len(existing) {
			src = len(existing) - 1
		}
		modes[i] = existing[src]
	}
	return modes
}
