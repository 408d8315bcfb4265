package plan

import (
	"slices"
	"sync"

	"github.com/tablewright/seatplan/pkg/errors"
	"github.com/tablewright/seatplan/pkg/guest"
	"github.com/tablewright/seatplan/pkg/rules"
	"github.com/tablewright/seatplan/pkg/table"
)

// Plan is the committed seating state of one event: an ordered list of
// tables, the guest directory, and the proximity rules in force.
//
// All methods are safe for use from multiple goroutines; compound operations
// hold the plan lock for their full duration so intermediate states are never
// observable. The engine itself is synchronous - no method blocks on anything
// but the lock.
type Plan struct {
	mu     sync.Mutex
	tables []*table.Table
	byID   map[string]*table.Table

	guests  guest.Directory
	ruleSet []rules.Rule

	// violations is the report for the current committed state, recomputed
	// after every committed mutation. Derived state: never persisted.
	violations []rules.Violation
}

// New creates an empty plan. The guest directory may be nil, in which case
// every assignment fails guest resolution; pass guest.MapDirectory for
// in-memory use.
func New(guests guest.Directory) *Plan {
	return &Plan{
		guests: guests,
		byID:   make(map[string]*table.Table),
	}
}

// Load reconstructs a plan from previously committed state, as read back
// from storage. The tables are adopted as-is except for their adjacency
// sets, which are derived state and recomputed, as is the violation report.
//
// A guest seated at more than one seat (possible in a hand-edited plan
// file) keeps the first occurrence in table and seat order; later
// duplicates are cleared so each guest occupies at most one seat.
func Load(guests guest.Directory, tables []*table.Table, ruleSet []rules.Rule) *Plan {
	p := New(guests)
	p.tables = slices.Clone(tables)
	seated := make(map[string]bool)
	for _, t := range p.tables {
		t.RefreshAdjacency()
		p.byID[t.ID] = t
		for _, s := range t.Seats {
			if s.GuestID == "" {
				continue
			}
			if seated[s.GuestID] {
				s.GuestID = ""
				continue
			}
			seated[s.GuestID] = true
		}
	}
	p.ruleSet = slices.Clone(ruleSet)
	p.recomputeViolationsLocked()
	return p
}

// Result is the outcome of a mutation or validation call. Failed operations
// carry one reason per distinct problem; committed state is unchanged unless
// OK is true.
type Result struct {
	OK      bool     `json:"ok"`
	Reasons []string `json:"reasons,omitempty"`
}

func failure(errs ...error) Result {
	r := Result{}
	for _, err := range errs {
		if err != nil {
			r.Reasons = append(r.Reasons, errors.UserMessage(err))
		}
	}
	return r
}

func success() Result { return Result{OK: true} }

// AddTable builds a table from its configuration and appends it to the plan.
// The table number is its 1-based position in the plan. Configuration
// problems are reported before any seats are built.
func (p *Plan) AddTable(name string, cfg table.Config) (*table.Table, error) {
	if err := errors.ValidateTableName(name); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	t, err := table.Build("", name, len(p.tables)+1, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "table %q", name)
	}
	p.tables = append(p.tables, t)
	p.byID[t.ID] = t
	p.recomputeViolationsLocked()
	return t, nil
}

// Table returns the table with the given ID and true, or nil and false.
// The returned pointer refers to committed state; treat it as read-only and
// mutate through plan operations.
func (p *Plan) Table(id string) (*table.Table, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.byID[id]
	return t, ok
}

// Tables returns the plan's tables in label order. The slice is a copy; the
// table pointers refer to committed state.
func (p *Plan) Tables() []*table.Table {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.tables)
}

// TableCount returns the number of tables in the plan.
func (p *Plan) TableCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tables)
}

// SetRules replaces the proximity rule set and recomputes the violation
// report against the current seating.
func (p *Plan) SetRules(ruleSet []rules.Rule) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ruleSet = slices.Clone(ruleSet)
	p.recomputeViolationsLocked()
}

// Rules returns a copy of the proximity rule set.
func (p *Plan) Rules() []rules.Rule {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.ruleSet)
}

// Guests returns the plan's guest directory.
func (p *Plan) Guests() guest.Directory { return p.guests }

// Violations returns the violation report for the current committed state.
// The report is recomputed eagerly after every committed mutation, so this
// is a copy of cached derived state, not a fresh scan.
func (p *Plan) Violations() []rules.Violation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.violations)
}

// AdjacentSeatIDs returns the IDs of the seats adjacent to the given seat,
// for UI highlighting.
func (p *Plan) AdjacentSeatIDs(tableID, seatID string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, s, err := p.findSeatLocked(tableID, seatID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(s.Adjacent))
	for _, pos := range s.Adjacent {
		if n, ok := t.SeatAt(pos); ok {
			ids = append(ids, n.ID)
		}
	}
	return ids, nil
}

// GuestSeat returns the table and seat occupied by the guest, or false when
// the guest is unseated.
func (p *Plan) GuestSeat(guestID string) (tableID, seatID string, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ref := p.seatOfLocked(guestID); ref != nil {
		return ref.Table.ID, ref.Seat.ID, true
	}
	return "", "", false
}

// Stats summarizes the plan for display.
type Stats struct {
	Tables     int                `json:"tables"`
	Seats      int                `json:"seats"`
	Occupied   int                `json:"occupied"`
	Locked     int                `json:"locked"`
	ByMode     map[table.Mode]int `json:"by_mode"`
	Violations int                `json:"violations"`
}

// Stats computes summary statistics over the whole plan.
func (p *Plan) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := Stats{
		Tables:     len(p.tables),
		ByMode:     make(map[table.Mode]int),
		Violations: len(p.violations),
	}
	for _, t := range p.tables {
		st.Seats += t.SeatCount()
		for _, s := range t.Seats {
			st.ByMode[s.Mode]++
			if s.Occupied() {
				st.Occupied++
			}
			if s.Locked {
				st.Locked++
			}
		}
	}
	return st
}

// findSeatLocked resolves a table and seat id pair. Callers hold p.mu.
func (p *Plan) findSeatLocked(tableID, seatID string) (*table.Table, *table.Seat, error) {
	t, ok := p.byID[tableID]
	if !ok {
		return nil, nil, errors.New(errors.ErrCodeTableNotFound, "table %s not found", tableID)
	}
	s, ok := t.Seat(seatID)
	if !ok {
		return nil, nil, errors.New(errors.ErrCodeSeatNotFound, "seat %s not found at table %s", seatID, tableID)
	}
	return t, s, nil
}

// seatOfLocked returns the seat currently holding the guest, or nil.
// Callers hold p.mu.
func (p *Plan) seatOfLocked(guestID string) *rules.SeatRef {
	if guestID == "" {
		return nil
	}
	for _, t := range p.tables {
		if s, ok := t.SeatForGuest(guestID); ok {
			return &rules.SeatRef{Table: t, Seat: s}
		}
	}
	return nil
}

// recomputeViolationsLocked refreshes the derived violation report.
// Callers hold p.mu.
func (p *Plan) recomputeViolationsLocked() {
	p.violations = rules.Detect(p.tables, p.ruleSet, p.guests)
}
