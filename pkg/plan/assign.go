package plan

import (
	"github.com/tablewright/seatplan/pkg/errors"
	"github.com/tablewright/seatplan/pkg/guest"
	"github.com/tablewright/seatplan/pkg/rules"
	"github.com/tablewright/seatplan/pkg/table"
)

// Assign seats a guest. Passing an empty guestID clears the seat, which
// always succeeds when the seat exists - locks and modes never block a clear.
//
// Assigning fails when the seat is locked or its mode rejects the guest's
// host-party flag; on failure the committed state is unchanged. A guest who
// is already seated elsewhere is moved: the old seat is cleared in the same
// committed transition, preserving the one-seat-per-guest invariant. On
// success the violation report is recomputed once.
func (p *Plan) Assign(tableID, seatID, guestID string) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, s, err := p.findSeatLocked(tableID, seatID)
	if err != nil {
		return failure(err)
	}

	if guestID == "" {
		if s.Occupied() {
			s.GuestID = ""
			p.recomputeViolationsLocked()
		}
		return success()
	}

	g, err := p.resolveGuestLocked(guestID)
	if err != nil {
		return failure(err)
	}
	if err := checkSeatAccepts(s, g); err != nil {
		return failure(err)
	}

	if prev := p.seatOfLocked(guestID); prev != nil {
		if prev.Seat == s {
			return success() // already there
		}
		prev.Seat.GuestID = ""
	}
	s.GuestID = guestID
	p.recomputeViolationsLocked()
	return success()
}

// Clear removes the guest from a seat. Equivalent to Assign with an empty
// guest ID.
func (p *Plan) Clear(tableID, seatID string) Result {
	return p.Assign(tableID, seatID, "")
}

// Swap exchanges the occupants of two seats as a single transition. Either
// seat may be empty, in which case the swap is a move. Both resulting
// guest/seat pairings must satisfy mode and lock constraints for their new
// seat; if either direction is invalid the whole call fails and neither seat
// changes. On success the violation report is recomputed once.
func (p *Plan) Swap(tableA, seatA, tableB, seatB string) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	res, apply := p.prepareSwapLocked(tableA, seatA, tableB, seatB)
	if !res.OK {
		return res
	}
	apply()
	p.recomputeViolationsLocked()
	return res
}

// ValidateAssignment checks whether assigning the guest would succeed,
// without touching committed state.
func (p *Plan) ValidateAssignment(tableID, seatID, guestID string) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, s, err := p.findSeatLocked(tableID, seatID)
	if err != nil {
		return failure(err)
	}
	if guestID == "" {
		return success()
	}
	g, err := p.resolveGuestLocked(guestID)
	if err != nil {
		return failure(err)
	}
	if err := checkSeatAccepts(s, g); err != nil {
		return failure(err)
	}
	return success()
}

// ValidateSwap checks whether a swap would succeed, without touching
// committed state. Both directions are checked and every distinct problem is
// reported.
func (p *Plan) ValidateSwap(tableA, seatA, tableB, seatB string) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	res, _ := p.prepareSwapLocked(tableA, seatA, tableB, seatB)
	return res
}

// DetectViolationsAfterAssign computes the violation report that would
// result from an assignment, by applying it to a deep copy of the affected
// tables. Committed state is never touched, even when the hypothetical
// assignment is itself invalid (the error is returned instead).
func (p *Plan) DetectViolationsAfterAssign(tableID, seatID, guestID string) ([]rules.Violation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, s, err := p.findSeatLocked(tableID, seatID)
	if err != nil {
		return nil, err
	}
	if guestID != "" {
		g, err := p.resolveGuestLocked(guestID)
		if err != nil {
			return nil, err
		}
		if err := checkSeatAccepts(s, g); err != nil {
			return nil, err
		}
	}

	// The guest may currently sit at a different table, which the move also
	// mutates; copy that table too.
	affected := map[string]bool{t.ID: true}
	if prev := p.seatOfLocked(guestID); prev != nil {
		affected[prev.Table.ID] = true
	}

	world := p.cloneWorldLocked(affected)
	if guestID != "" {
		for _, ct := range world {
			if ps, ok := ct.SeatForGuest(guestID); ok {
				ps.GuestID = ""
			}
		}
	}
	cs, _ := world[t.ID].Seat(seatID)
	cs.GuestID = guestID

	return rules.Detect(worldSlice(world, p.tables), p.ruleSet, p.guests), nil
}

// DetectViolationsAfterSwap computes the violation report that would result
// from a swap, on a deep copy of the affected tables only.
func (p *Plan) DetectViolationsAfterSwap(tableA, seatA, tableB, seatB string) ([]rules.Violation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ta, sa, err := p.findSeatLocked(tableA, seatA)
	if err != nil {
		return nil, err
	}
	tb, sb, err := p.findSeatLocked(tableB, seatB)
	if err != nil {
		return nil, err
	}

	world := p.cloneWorldLocked(map[string]bool{ta.ID: true, tb.ID: true})
	ca, _ := world[ta.ID].Seat(sa.ID)
	cb, _ := world[tb.ID].Seat(sb.ID)
	ca.GuestID, cb.GuestID = sb.GuestID, sa.GuestID

	return rules.Detect(worldSlice(world, p.tables), p.ruleSet, p.guests), nil
}

// prepareSwapLocked validates a swap and returns the validation result plus
// the commit closure. The closure mutates both seats; callers invoke it only
// when the result is OK, while still holding p.mu, so the two writes are one
// atomic transition. Callers hold p.mu.
func (p *Plan) prepareSwapLocked(tableA, seatA, tableB, seatB string) (Result, func()) {
	_, sa, errA := p.findSeatLocked(tableA, seatA)
	_, sb, errB := p.findSeatLocked(tableB, seatB)
	if errA != nil || errB != nil {
		return failure(errA, errB), nil
	}
	if sa == sb {
		return failure(errors.New(errors.ErrCodeConfigInvalid, "cannot swap a seat with itself")), nil
	}

	var problems []error
	check := func(incoming string, dst *table.Seat) {
		if incoming == "" {
			// An empty side only needs the destination unlocked so the seat
			// can be vacated or filled.
			if dst.Locked {
				problems = append(problems, errors.New(errors.ErrCodeLockedSeat, "seat %d is locked", dst.Number))
			}
			return
		}
		g, err := p.resolveGuestLocked(incoming)
		if err != nil {
			problems = append(problems, err)
			return
		}
		if err := checkSeatAccepts(dst, g); err != nil {
			problems = append(problems, err)
		}
	}
	check(sa.GuestID, sb)
	check(sb.GuestID, sa)
	if len(problems) > 0 {
		return failure(problems...), nil
	}

	return success(), func() {
		sa.GuestID, sb.GuestID = sb.GuestID, sa.GuestID
	}
}

// resolveGuestLocked resolves a guest ID through the directory.
func (p *Plan) resolveGuestLocked(guestID string) (guest.Guest, error) {
	if p.guests == nil {
		return guest.Guest{}, errors.New(errors.ErrCodeGuestNotFound, "no guest directory configured")
	}
	g, ok := p.guests.Guest(guestID)
	if !ok {
		return guest.Guest{}, errors.New(errors.ErrCodeGuestNotFound, "guest %s not found", guestID)
	}
	return g, nil
}

// checkSeatAccepts enforces the lock and mode constraints for seating a
// guest. Clearing is exempt and never passes through here.
func checkSeatAccepts(s *table.Seat, g guest.Guest) error {
	if s.Locked {
		return errors.New(errors.ErrCodeLockedSeat, "seat %d is locked", s.Number)
	}
	if !s.Mode.Accepts(g.FromHost) {
		return errors.New(errors.ErrCodeModeViolation,
			"seat %d requires %s guests, %s is not eligible", s.Number, s.Mode, g.DisplayName())
	}
	return nil
}

// cloneWorldLocked deep-copies the tables whose IDs are in affected and
// returns them keyed by ID. Untouched tables are shared by reference through
// worldSlice, which keeps validation cheap on large plans. Callers hold p.mu.
func (p *Plan) cloneWorldLocked(affected map[string]bool) map[string]*table.Table {
	clones := make(map[string]*table.Table, len(affected))
	for id := range affected {
		if t, ok := p.byID[id]; ok {
			clones[id] = t.Clone()
		}
	}
	return clones
}

// worldSlice assembles the hypothetical world: cloned tables where present,
// committed tables elsewhere. The committed tables are only read.
func worldSlice(clones map[string]*table.Table, committed []*table.Table) []*table.Table {
	out := make([]*table.Table, len(committed))
	for i, t := range committed {
		if c, ok := clones[t.ID]; ok {
			out[i] = c
		} else {
			out[i] = t
		}
	}
	return out
}
