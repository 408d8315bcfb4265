// Package config loads declarative event configurations from TOML.
//
// A configuration names the guests, the tables with their structural layout,
// the proximity rules, and optional initial assignments. Validation is
// static and happens before any table is built, so a bad file never leaves a
// half-constructed plan behind.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	seaterrors "github.com/tablewright/seatplan/pkg/errors"
	"github.com/tablewright/seatplan/pkg/guest"
	"github.com/tablewright/seatplan/pkg/plan"
	"github.com/tablewright/seatplan/pkg/rules"
	"github.com/tablewright/seatplan/pkg/table"
)

// File is the top-level TOML document.
type File struct {
	Name        string       `toml:"name"`
	Guests      []Guest      `toml:"guests"`
	Tables      []Table      `toml:"tables"`
	Rules       []Rule       `toml:"rules"`
	Assignments []Assignment `toml:"assignments"`
}

// Guest declares one guest.
type Guest struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	FromHost bool   `toml:"from_host"`
}

// Table declares one table's structural layout. Seats is used for round
// tables, Sides for rectangular ones. Direction defaults to clockwise and
// Pattern to sequential.
type Table struct {
	Name      string `toml:"name"`
	Shape     string `toml:"shape"`
	Seats     int    `toml:"seats"`
	Sides     Sides  `toml:"sides"`
	Direction string `toml:"direction"`
	Pattern   string `toml:"pattern"`
	Start     int    `toml:"start"`
	Modes     *Modes `toml:"modes"`
}

// Sides holds per-side seat counts for rectangular tables.
type Sides struct {
	Top    int `toml:"top"`
	Right  int `toml:"right"`
	Bottom int `toml:"bottom"`
	Left   int `toml:"left"`
}

// Modes declares the table's mode pattern.
type Modes struct {
	Kind      string     `toml:"kind"`
	Mode      string     `toml:"mode"`
	ModeA     string     `toml:"mode_a"`
	ModeB     string     `toml:"mode_b"`
	Sequence  []string   `toml:"sequence"`
	Ratios    []Ratio    `toml:"ratios"`
	Overrides []Override `toml:"overrides"`
}

// Ratio declares one bucket of a ratio mode pattern.
type Ratio struct {
	Mode  string  `toml:"mode"`
	Ratio float64 `toml:"ratio"`
}

// Override pins the mode of a single position.
type Override struct {
	Position int    `toml:"position"`
	Mode     string `toml:"mode"`
}

// Rule declares a proximity rule between two guests. The ID is optional and
// generated when absent.
type Rule struct {
	ID     string `toml:"id"`
	Kind   string `toml:"kind"`
	GuestA string `toml:"guest_a"`
	GuestB string `toml:"guest_b"`
}

// Assignment seats a guest as part of plan construction. Tables are
// referenced by name and seats by their displayed number.
type Assignment struct {
	Table string `toml:"table"`
	Seat  int    `toml:"seat"`
	Guest string `toml:"guest"`
}

// LoadFile reads and parses a TOML configuration file.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, seaterrors.Wrap(seaterrors.ErrCodeConfigInvalid, err, "read config")
	}
	return Parse(data)
}

// Parse parses TOML bytes into a File and validates it statically.
func Parse(data []byte) (File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, seaterrors.Wrap(seaterrors.ErrCodeConfigInvalid, err, "parse config")
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate checks cross-references and per-table configurations without
// building anything.
func (f File) Validate() error {
	guests := make(map[string]bool, len(f.Guests))
	for _, g := range f.Guests {
		if g.ID == "" {
			return invalid("guest %q has no id", g.Name)
		}
		if guests[g.ID] {
			return invalid("duplicate guest id %q", g.ID)
		}
		guests[g.ID] = true
	}

	tables := make(map[string]bool, len(f.Tables))
	for _, t := range f.Tables {
		if t.Name == "" {
			return invalid("table without a name")
		}
		if tables[t.Name] {
			return invalid("duplicate table name %q", t.Name)
		}
		tables[t.Name] = true
		cfg, err := t.tableConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return seaterrors.Wrap(seaterrors.ErrCodeConfigInvalid, err, "table %q", t.Name)
		}
	}

	for _, r := range f.Rules {
		if _, err := rules.ParseKind(r.Kind); err != nil {
			return seaterrors.Wrap(seaterrors.ErrCodeConfigInvalid, err, "rule")
		}
		if !guests[r.GuestA] || !guests[r.GuestB] {
			return invalid("rule references unknown guest %q or %q", r.GuestA, r.GuestB)
		}
		if r.GuestA == r.GuestB {
			return invalid("rule pairs guest %q with itself", r.GuestA)
		}
	}

	for _, a := range f.Assignments {
		if !tables[a.Table] {
			return invalid("assignment references unknown table %q", a.Table)
		}
		if !guests[a.Guest] {
			return invalid("assignment references unknown guest %q", a.Guest)
		}
	}
	return nil
}

// GuestList converts the declared guests to their domain type.
func (f File) GuestList() []guest.Guest {
	out := make([]guest.Guest, len(f.Guests))
	for i, g := range f.Guests {
		out[i] = guest.Guest{ID: g.ID, Name: g.Name, FromHost: g.FromHost}
	}
	return out
}

// Build constructs a plan from the configuration: tables in declaration
// order, then rules, then initial assignments. An assignment the built
// tables reject fails the whole build.
func Build(f File) (*plan.Plan, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	p := plan.New(guest.NewMapDirectory(f.GuestList()))
	byName := make(map[string]*table.Table, len(f.Tables))
	for _, t := range f.Tables {
		cfg, err := t.tableConfig()
		if err != nil {
			return nil, err
		}
		built, err := p.AddTable(t.Name, cfg)
		if err != nil {
			return nil, err
		}
		byName[t.Name] = built
	}

	ruleSet := make([]rules.Rule, len(f.Rules))
	for i, r := range f.Rules {
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		ruleSet[i] = rules.Rule{ID: id, Kind: rules.Kind(r.Kind), GuestA: r.GuestA, GuestB: r.GuestB}
	}
	p.SetRules(ruleSet)

	for _, a := range f.Assignments {
		tbl := byName[a.Table]
		seat := seatByNumber(tbl, a.Seat)
		if seat == nil {
			return nil, invalid("assignment: table %q has no seat %d", a.Table, a.Seat)
		}
		if res := p.Assign(tbl.ID, seat.ID, a.Guest); !res.OK {
			return nil, invalid("assignment of %q to table %q seat %d: %s",
				a.Guest, a.Table, a.Seat, res.Reasons[0])
		}
	}
	return p, nil
}

func seatByNumber(t *table.Table, number int) *table.Seat {
	for _, s := range t.Seats {
		if s.Number == number {
			return s
		}
	}
	return nil
}

func (t Table) tableConfig() (table.Config, error) {
	cfg := table.Config{
		Seats: t.Seats,
		Sides: table.Sides{Top: t.Sides.Top, Right: t.Sides.Right, Bottom: t.Sides.Bottom, Left: t.Sides.Left},
		Start: t.Start,
	}

	shape, err := table.ParseShape(t.Shape)
	if err != nil {
		return table.Config{}, seaterrors.Wrap(seaterrors.ErrCodeConfigInvalid, err, "table %q", t.Name)
	}
	cfg.Shape = shape

	cfg.Direction = table.Clockwise
	if t.Direction != "" {
		if cfg.Direction, err = table.ParseDirection(t.Direction); err != nil {
			return table.Config{}, seaterrors.Wrap(seaterrors.ErrCodeConfigInvalid, err, "table %q", t.Name)
		}
	}

	cfg.Pattern = table.PatternSequential
	if t.Pattern != "" {
		if cfg.Pattern, err = table.ParsePattern(t.Pattern); err != nil {
			return table.Config{}, seaterrors.Wrap(seaterrors.ErrCodeConfigInvalid, err, "table %q", t.Name)
		}
	}

	if t.Modes != nil {
		if cfg.Modes, err = t.Modes.modePattern(); err != nil {
			return table.Config{}, seaterrors.Wrap(seaterrors.ErrCodeConfigInvalid, err, "table %q", t.Name)
		}
	}
	return cfg, nil
}

func (m Modes) modePattern() (table.ModePattern, error) {
	p := table.ModePattern{Kind: table.ModePatternKind(m.Kind)}

	parse := func(s string) (table.Mode, error) {
		if s == "" {
			return table.ModeDefault, nil
		}
		return table.ParseMode(s)
	}

	var err error
	if p.Mode, err = parse(m.Mode); err != nil {
		return table.ModePattern{}, err
	}
	if p.ModeA, err = parse(m.ModeA); err != nil {
		return table.ModePattern{}, err
	}
	if p.ModeB, err = parse(m.ModeB); err != nil {
		return table.ModePattern{}, err
	}
	for _, s := range m.Sequence {
		mode, err := table.ParseMode(s)
		if err != nil {
			return table.ModePattern{}, err
		}
		p.Sequence = append(p.Sequence, mode)
	}
	for _, r := range m.Ratios {
		mode, err := table.ParseMode(r.Mode)
		if err != nil {
			return table.ModePattern{}, err
		}
		p.Ratios = append(p.Ratios, table.ModeRatio{Mode: mode, Ratio: r.Ratio})
	}
	for _, o := range m.Overrides {
		mode, err := table.ParseMode(o.Mode)
		if err != nil {
			return table.ModePattern{}, err
		}
		if p.Overrides == nil {
			p.Overrides = make(map[int]table.Mode)
		}
		p.Overrides[o.Position] = mode
	}
	return p, nil
}

func invalid(format string, args ...any) error {
	return seaterrors.New(seaterrors.ErrCodeConfigInvalid, format, args...)
}
