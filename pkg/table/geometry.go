package table

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Config is the declarative structural configuration of a table.
// It is everything [Build] needs to lay out the seat array: the shape and
// seat counts, the numbering walk, and the mode pattern.
type Config struct {
	Shape Shape `json:"shape"`

	// Seats is the seat count for round tables.
	Seats int `json:"seats,omitempty"`

	// Sides holds the per-side counts for rectangular tables.
	Sides Sides `json:"sides,omitzero"`

	Direction Direction `json:"direction"`
	Pattern   Pattern   `json:"pattern"`
	Start     int       `json:"start"`

	Modes ModePattern `json:"modes,omitzero"`
}

// SeatCount returns the total number of seats the configuration declares.
func (c Config) SeatCount() int {
	if c.Shape == ShapeRectangle {
		return c.Sides.Total()
	}
	return c.Seats
}

// Validate checks the configuration statically, before any seats are built.
// It returns the first problem found, wrapped in the sentinel errors of this
// package so callers can classify it as a configuration fault.
func (c Config) Validate() error {
	switch c.Shape {
	case ShapeRound:
		if c.Seats < 1 {
			return fmt.Errorf("%w: round table declares %d", ErrInvalidSeatCount, c.Seats)
		}
	case ShapeRectangle:
		if c.Sides.Top < 0 || c.Sides.Right < 0 || c.Sides.Bottom < 0 || c.Sides.Left < 0 {
			return ErrNegativeSideCount
		}
		if c.Sides.Total() < 1 {
			return fmt.Errorf("%w: all sides are empty", ErrInvalidSeatCount)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownShape, c.Shape)
	}
	switch c.Direction {
	case Clockwise, CounterClockwise:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownDirection, c.Direction)
	}
	switch c.Pattern {
	case PatternSequential, PatternAlternating, PatternOpposite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPattern, c.Pattern)
	}
	if c.Start < 0 || c.Start >= c.SeatCount() {
		return fmt.Errorf("%w: %d with %d seats", ErrStartOutOfRange, c.Start, c.SeatCount())
	}
	return c.Modes.validate(c.SeatCount())
}

// Build constructs a table from its structural configuration.
//
// Building is a batch operation: positions and coordinates come from the
// shape, seat numbers from the ordering pattern, modes from the mode pattern,
// and the adjacency sets from the shape's neighbor rules. A structural change
// to an existing table is a delete and recreate - call Build again rather
// than resizing seats in place.
//
// When id is empty a random UUID is generated. Seat IDs are always generated.
func Build(id, name string, number int, cfg Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if id == "" {
		id = uuid.NewString()
	}

	t := &Table{
		ID:     id,
		Name:   name,
		Number: number,
		Shape:  cfg.Shape,
	}
	if cfg.Shape == ShapeRectangle {
		t.Sides = cfg.Sides
	}

	count := cfg.SeatCount()
	var rect *Sides
	if cfg.Shape == ShapeRectangle {
		rect = &cfg.Sides
	}

	numbers, err := GenerateOrdering(count, cfg.Direction, cfg.Pattern, cfg.Start, rect)
	if err != nil {
		return nil, err
	}
	modes, err := GenerateModes(cfg.Modes, count)
	if err != nil {
		return nil, err
	}

	t.Seats = make([]*Seat, count)
	for pos := 0; pos < count; pos++ {
		x, y := seatCoords(cfg, pos)
		t.Seats[pos] = &Seat{
			ID:       uuid.NewString(),
			TableID:  t.ID,
			Position: pos,
			Number:   numbers[pos],
			Mode:     modes[pos],
			X:        x,
			Y:        y,
		}
	}

	t.RefreshAdjacency()
	return t, nil
}

// RefreshAdjacency recomputes and caches the adjacency set of every seat.
// It must be called whenever the table's structural configuration changes;
// Build calls it automatically.
func (t *Table) RefreshAdjacency() {
	var adj [][]int
	if t.Shape == ShapeRectangle {
		adj = rectangleAdjacency(t.Sides)
	} else {
		adj = roundAdjacency(len(t.Seats))
	}
	for pos, s := range t.Seats {
		s.Adjacent = adj[pos]
	}
}

// seatCoords returns the unit-square coordinates of a position.
// Round tables place seats on a circle inscribed in the unit square, starting
// at twelve o'clock. Rectangular seats are spaced evenly along their side.
func seatCoords(cfg Config, pos int) (x, y float64) {
	if cfg.Shape == ShapeRound {
		theta := 2*math.Pi*float64(pos)/float64(cfg.Seats) - math.Pi/2
		return 0.5 + 0.5*math.Cos(theta), 0.5 + 0.5*math.Sin(theta)
	}
	side, idx := cfg.Sides.sideOf(pos)
	c := cfg.Sides.counts()
	frac := (float64(idx) + 1) / (float64(c[side]) + 1)
	switch side {
	case 0: // top, left to right
		return frac, 0
	case 1: // right, top to bottom
		return 1, frac
	case 2: // bottom, right to left
		return 1 - frac, 1
	default: // left, bottom to top
		return 0, 1 - frac
	}
}
