package table

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidSeatCount is returned by [Build] when a round table declares
	// fewer than one seat or a rectangular table has no seats on any side.
	ErrInvalidSeatCount = errors.New("table must have at least one seat")

	// ErrNegativeSideCount is returned by [Build] when a rectangular side
	// declares a negative number of seats.
	ErrNegativeSideCount = errors.New("side seat counts must not be negative")

	// ErrUnknownShape is returned when a shape is neither round nor rectangle.
	ErrUnknownShape = errors.New("unknown table shape")

	// ErrStartOutOfRange is returned by [GenerateOrdering] when the start
	// position is not a valid position index.
	ErrStartOutOfRange = errors.New("start position out of range")

	// ErrUnknownDirection is returned when a direction is neither clockwise
	// nor counter-clockwise.
	ErrUnknownDirection = errors.New("unknown ordering direction")

	// ErrUnknownPattern is returned when an ordering pattern is not one of
	// sequential, alternating, or opposite.
	ErrUnknownPattern = errors.New("unknown ordering pattern")
)

// Shape identifies the physical form of a table.
type Shape string

const (
	// ShapeRound places seats at equal angular spacing around a circle.
	ShapeRound Shape = "round"
	// ShapeRectangle places seats along the four sides of a rectangle.
	ShapeRectangle Shape = "rectangle"
)

// ParseShape converts a string to a Shape.
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case ShapeRound, ShapeRectangle:
		return Shape(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// Mode restricts which guest category may occupy a seat.
// It is a closed three-way enum: exhaustive switches over Mode should not
// need a default arm for unknown values.
type Mode string

const (
	// ModeDefault accepts any guest.
	ModeDefault Mode = "default"
	// ModeHostOnly accepts only guests from the host party.
	ModeHostOnly Mode = "host"
	// ModeExternalOnly accepts only guests not from the host party.
	ModeExternalOnly Mode = "external"
)

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDefault, ModeHostOnly, ModeExternalOnly:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown seat mode %q", s)
}

// Accepts reports whether a guest with the given host-party flag may occupy
// a seat with this mode.
func (m Mode) Accepts(fromHost bool) bool {
	switch m {
	case ModeHostOnly:
		return fromHost
	case ModeExternalOnly:
		return !fromHost
	default:
		return true
	}
}

// Direction is the rotational walk direction used by ordering patterns.
type Direction int

const (
	// Clockwise walks positions in increasing index order.
	Clockwise Direction = 1
	// CounterClockwise walks positions in decreasing index order.
	CounterClockwise Direction = -1
)

// ParseDirection converts a string to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "clockwise", "cw":
		return Clockwise, nil
	case "counter-clockwise", "counterclockwise", "ccw":
		return CounterClockwise, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// String returns the canonical name of the direction.
func (d Direction) String() string {
	if d == CounterClockwise {
		return "counter-clockwise"
	}
	return "clockwise"
}

// Sides holds the per-side seat counts of a rectangular table.
// The zero value is a table with no seats.
type Sides struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Total returns the number of seats across all four sides.
func (s Sides) Total() int { return s.Top + s.Right + s.Bottom + s.Left }

// counts returns the side counts in position-assignment order.
func (s Sides) counts() [4]int { return [4]int{s.Top, s.Right, s.Bottom, s.Left} }

// start returns the first position index of the given side (0=top, 1=right,
// 2=bottom, 3=left).
func (s Sides) start(side int) int {
	c := s.counts()
	n := 0
	for i := 0; i < side; i++ {
		n += c[i]
	}
	return n
}

// sideOf returns the side and the index within that side for a position.
// The second return is -1 when the position is out of range.
func (s Sides) sideOf(pos int) (side, idx int) {
	c := s.counts()
	for i := 0; i < 4; i++ {
		if pos < c[i] {
			return i, pos
		}
		pos -= c[i]
	}
	return 0, -1
}

// Opposite returns the position facing pos on the opposite side, or -1 when
// no opposite exists. Opposite adjacency is defined only when a side and its
// facing side seat the same number of people; because facing sides are walked
// in reverse visual direction, the mapping mirrors the in-side index:
// top[i] faces bottom[topCount-1-i] and left[i] faces right[leftCount-1-i].
func (s Sides) Opposite(pos int) int {
	side, idx := s.sideOf(pos)
	if idx < 0 {
		return -1
	}
	c := s.counts()
	facing := [4]int{2, 3, 0, 1}[side]
	if c[side] != c[facing] || c[side] == 0 {
		return -1
	}
	return s.start(facing) + c[side] - 1 - idx
}

// Seat is a single place at a table.
//
// Position is the 0-based index in the table's assignment order and Number is
// the human-facing seat number (a permutation of 1..N). Adjacent caches the
// positions considered adjacent for proximity checking; it is derived when
// the table is built and must be recomputed on structural change.
//
// GuestID and Locked are assignment state and are mutated only by the plan
// coordinator, never by this package.
type Seat struct {
	ID       string  `json:"id"`
	TableID  string  `json:"table_id"`
	Position int     `json:"position"`
	Number   int     `json:"number"`
	Mode     Mode    `json:"mode"`
	GuestID  string  `json:"guest_id,omitempty"`
	Locked   bool    `json:"locked,omitempty"`
	Adjacent []int   `json:"adjacent"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// Occupied reports whether a guest is assigned to the seat.
func (s *Seat) Occupied() bool { return s.GuestID != "" }

// Clone returns a deep copy of the seat.
func (s *Seat) Clone() *Seat {
	c := *s
	c.Adjacent = slices.Clone(s.Adjacent)
	return &c
}

// Table is a round or rectangular table with its ordered seat array.
//
// Seats are indexed by Position: Seats[i].Position == i always holds for a
// table produced by [Build]. Number is the table's label index within a plan
// and is maintained by the plan coordinator (it is renumbered when earlier
// tables are deleted).
type Table struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Number int     `json:"number"`
	Shape  Shape   `json:"shape"`
	Sides  Sides   `json:"sides,omitzero"`
	Seats  []*Seat `json:"seats"`
}

// SeatCount returns the number of seats at the table.
func (t *Table) SeatCount() int { return len(t.Seats) }

// Seat returns the seat with the given ID and true, or nil and false.
func (t *Table) Seat(id string) (*Seat, bool) {
	for _, s := range t.Seats {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// SeatAt returns the seat at the given position and true, or nil and false
// when the position is out of range.
func (t *Table) SeatAt(pos int) (*Seat, bool) {
	if pos < 0 || pos >= len(t.Seats) {
		return nil, false
	}
	return t.Seats[pos], true
}

// SeatForGuest returns the seat occupied by the guest, or nil and false.
func (t *Table) SeatForGuest(guestID string) (*Seat, bool) {
	if guestID == "" {
		return nil, false
	}
	for _, s := range t.Seats {
		if s.GuestID == guestID {
			return s, true
		}
	}
	return nil, false
}

// OccupiedCount returns the number of seats with an assigned guest.
func (t *Table) OccupiedCount() int {
	n := 0
	for _, s := range t.Seats {
		if s.Occupied() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the table, including all seats.
// Clones are the isolation mechanism for simulate-then-commit validation:
// a hypothetical mutation is applied to a clone and discarded, leaving the
// committed table untouched.
func (t *Table) Clone() *Table {
	c := *t
	c.Seats = make([]*Seat, len(t.Seats))
	for i, s := range t.Seats {
		c.Seats[i] = s.Clone()
	}
	return &c
}

// mod returns a mod n with a non-negative result.
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
