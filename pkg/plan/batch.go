package plan

import (
	"fmt"
	"slices"

	"github.com/tablewright/seatplan/pkg/errors"
	"github.com/tablewright/seatplan/pkg/table"
)

// Batch table operations are folds over the single-seat transition rules,
// executed as one critical section with a single violation recomputation at
// the end.

// SetLocked locks or unlocks one seat. Locking is orthogonal to occupancy
// and never changes who sits where.
func (p *Plan) SetLocked(tableID, seatID string, locked bool) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, s, err := p.findSeatLocked(tableID, seatID)
	if err != nil {
		return failure(err)
	}
	s.Locked = locked
	return success()
}

// LockAll locks every seat of a table.
func (p *Plan) LockAll(tableID string) Result { return p.setAllLocked(tableID, true) }

// UnlockAll unlocks every seat of a table.
func (p *Plan) UnlockAll(tableID string) Result { return p.setAllLocked(tableID, false) }

func (p *Plan) setAllLocked(tableID string, locked bool) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := p.byID[tableID]
	if !ok {
		return failure(errors.New(errors.ErrCodeTableNotFound, "table %s not found", tableID))
	}
	for _, s := range t.Seats {
		s.Locked = locked
	}
	return success()
}

// ClearAllSeats removes every guest from a table. Clearing ignores locks,
// like single-seat clears. Violations are recomputed once at the end.
func (p *Plan) ClearAllSeats(tableID string) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := p.byID[tableID]
	if !ok {
		return failure(errors.New(errors.ErrCodeTableNotFound, "table %s not found", tableID))
	}
	changed := false
	for _, s := range t.Seats {
		if s.Occupied() {
			s.GuestID = ""
			changed = true
		}
	}
	if changed {
		p.recomputeViolationsLocked()
	}
	return success()
}

// DeleteTable removes a table from the plan and renumbers the tables that
// followed it so labels stay dense. Seated guests at the deleted table become
// unseated; the violation report is recomputed once.
func (p *Plan) DeleteTable(tableID string) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.byID[tableID]; !ok {
		return failure(errors.New(errors.ErrCodeTableNotFound, "table %s not found", tableID))
	}
	delete(p.byID, tableID)
	p.tables = slices.DeleteFunc(p.tables, func(t *table.Table) bool { return t.ID == tableID })
	for i, t := range p.tables {
		t.Number = i + 1
	}
	p.recomputeViolationsLocked()
	return success()
}

// ReplaceOptions controls what survives a table rebuild.
type ReplaceOptions struct {
	// PreserveModes rescales the existing per-seat modes onto the new seat
	// count (nearest-index resampling) instead of using the configuration's
	// mode pattern.
	PreserveModes bool

	// KeepAssignments re-seats the table's guests by position where the
	// rebuilt seat still exists and accepts them; guests that no longer fit
	// are dropped and reported in the result reasons.
	KeepAssignments bool
}

// ReplaceTable rebuilds a table from a new structural configuration.
// A structural modify is a delete and recreate: the whole seat array is
// discarded and rebuilt, with fresh seat IDs and recomputed adjacency. The
// table keeps its identity (ID, name, number). The call is all-or-nothing:
// an invalid configuration leaves the existing table untouched.
func (p *Plan) ReplaceTable(tableID string, cfg table.Config, opts ReplaceOptions) Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	old, ok := p.byID[tableID]
	if !ok {
		return failure(errors.New(errors.ErrCodeTableNotFound, "table %s not found", tableID))
	}

	if opts.PreserveModes {
		existing := make([]table.Mode, len(old.Seats))
		for i, s := range old.Seats {
			existing[i] = s.Mode
		}
		cfg.Modes = table.ModePattern{
			Kind:      table.ModePatternSpecific,
			Overrides: overridesFromModes(table.RescaleModes(existing, cfg.SeatCount())),
		}
	}

	rebuilt, err := table.Build(old.ID, old.Name, old.Number, cfg)
	if err != nil {
		return failure(errors.Wrap(errors.ErrCodeConfigInvalid, err, "table %q", old.Name))
	}

	res := success()
	if opts.KeepAssignments {
		for pos, s := range old.Seats {
			if !s.Occupied() {
				continue
			}
			ns, ok := rebuilt.SeatAt(pos)
			if !ok {
				res.Reasons = append(res.Reasons,
					fmt.Sprintf("guest %s dropped: position %d no longer exists", s.GuestID, pos))
				continue
			}
			g, err := p.resolveGuestLocked(s.GuestID)
			if err == nil {
				err = checkSeatAccepts(ns, g)
			}
			if err != nil {
				res.Reasons = append(res.Reasons,
					fmt.Sprintf("guest %s dropped: %s", s.GuestID, errors.UserMessage(err)))
				continue
			}
			ns.GuestID = s.GuestID
		}
	}

	for i, t := range p.tables {
		if t.ID == tableID {
			p.tables[i] = rebuilt
		}
	}
	p.byID[tableID] = rebuilt
	p.recomputeViolationsLocked()
	return res
}

func overridesFromModes(modes []table.Mode) map[int]table.Mode {
	overrides := make(map[int]table.Mode, len(modes))
	for i, m := range modes {
		overrides[i] = m
	}
	return overrides
}
