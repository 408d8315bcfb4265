// Package planfile is the canonical JSON serialization of a seating plan.
// Used for API responses, storage, caching, and hand-editable plan files.
//
// The format is versioned and designed for round-trip fidelity: a plan
// written and read back seats the same guests on the same seats. Only
// committed state is written; derived state (seat adjacency, the violation
// report) is recomputed on load.
package planfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/tablewright/seatplan/pkg/guest"
	"github.com/tablewright/seatplan/pkg/plan"
	"github.com/tablewright/seatplan/pkg/rules"
	"github.com/tablewright/seatplan/pkg/table"
)

// Version is the current document format version.
const Version = 1

// Document is the serialized form of a plan.
type Document struct {
	Version int           `json:"version" bson:"version"`
	Name    string        `json:"name,omitempty" bson:"name,omitempty"`
	Tables  []Table       `json:"tables" bson:"tables"`
	Guests  []guest.Guest `json:"guests,omitempty" bson:"guests,omitempty"`
	Rules   []Rule        `json:"rules,omitempty" bson:"rules,omitempty"`
}

// Table is the serialized form of one table. Seats are stored in position
// order; the adjacency sets are derived and not part of the format.
type Table struct {
	ID     string      `json:"id" bson:"id"`
	Name   string      `json:"name,omitempty" bson:"name,omitempty"`
	Number int         `json:"number" bson:"number"`
	Shape  table.Shape `json:"shape" bson:"shape"`
	Sides  table.Sides `json:"sides,omitzero" bson:"sides,omitempty"`
	Seats  []Seat      `json:"seats" bson:"seats"`
}

// Seat is the serialized form of one seat.
type Seat struct {
	ID     string     `json:"id" bson:"id"`
	Number int        `json:"number" bson:"number"`
	Mode   table.Mode `json:"mode,omitempty" bson:"mode,omitempty"`
	Guest  string     `json:"guest,omitempty" bson:"guest,omitempty"`
	Locked bool       `json:"locked,omitempty" bson:"locked,omitempty"`
	X      float64    `json:"x" bson:"x"`
	Y      float64    `json:"y" bson:"y"`
}

// Rule is the serialized form of a proximity rule.
type Rule struct {
	ID     string     `json:"id,omitempty" bson:"id,omitempty"`
	Kind   rules.Kind `json:"kind" bson:"kind"`
	GuestA string     `json:"guest_a" bson:"guest_a"`
	GuestB string     `json:"guest_b" bson:"guest_b"`
}

// FromPlan converts a plan to its serialization format. The guest list is
// passed explicitly because the plan only holds a lookup directory.
func FromPlan(p *plan.Plan, guests []guest.Guest, name string) Document {
	doc := Document{
		Version: Version,
		Name:    name,
		Guests:  slices.Clone(guests),
	}
	for _, t := range p.Tables() {
		doc.Tables = append(doc.Tables, tableDoc(t))
	}
	for _, r := range p.Rules() {
		doc.Rules = append(doc.Rules, Rule{ID: r.ID, Kind: r.Kind, GuestA: r.GuestA, GuestB: r.GuestB})
	}
	return doc
}

// ToPlan converts a document back to a live plan. The guest directory is
// built from the document's guest list; adjacency and violations are
// recomputed.
func ToPlan(doc Document) (*plan.Plan, error) {
	if doc.Version != Version {
		return nil, fmt.Errorf("unsupported plan format version %d", doc.Version)
	}

	tables := make([]*table.Table, 0, len(doc.Tables))
	for _, td := range doc.Tables {
		t, err := tableFromDoc(td)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	ruleSet := make([]rules.Rule, 0, len(doc.Rules))
	for _, rd := range doc.Rules {
		if _, err := rules.ParseKind(string(rd.Kind)); err != nil {
			return nil, fmt.Errorf("rule %s: %w", rd.ID, err)
		}
		ruleSet = append(ruleSet, rules.Rule{ID: rd.ID, Kind: rd.Kind, GuestA: rd.GuestA, GuestB: rd.GuestB})
	}

	return plan.Load(guest.NewMapDirectory(doc.Guests), tables, ruleSet), nil
}

// UnmarshalDocument deserializes JSON bytes to a Document.
func UnmarshalDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// MarshalPlan converts a plan to indented JSON bytes.
func MarshalPlan(p *plan.Plan, guests []guest.Guest, name string) ([]byte, error) {
	var buf bytes.Buffer
	if err := writePlanTo(p, guests, name, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePlanFile writes a plan to a JSON file.
// The file is created with 0644 permissions.
func WritePlanFile(p *plan.Plan, guests []guest.Guest, name, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writePlanTo(p, guests, name, f)
}

// WritePlan writes a plan as JSON to an io.Writer.
func WritePlan(p *plan.Plan, guests []guest.Guest, name string, w io.Writer) error {
	return writePlanTo(p, guests, name, w)
}

// WriteDocumentFile writes an already-built document to a JSON file.
func WriteDocumentFile(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadDocumentFile reads a JSON file and returns the raw document. Use this
// instead of ReadPlanFile when the caller needs the guest list and plan name
// to serialize the plan again later.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	var doc Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// ReadPlanFile reads a JSON file and returns the reconstructed plan.
func ReadPlanFile(path string) (*plan.Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readPlanFrom(f)
}

// ReadPlan decodes a JSON plan from an io.Reader.
func ReadPlan(r io.Reader) (*plan.Plan, error) {
	return readPlanFrom(r)
}

func writePlanTo(p *plan.Plan, guests []guest.Guest, name string, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromPlan(p, guests, name)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readPlanFrom(r io.Reader) (*plan.Plan, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToPlan(doc)
}

func tableDoc(t *table.Table) Table {
	td := Table{
		ID:     t.ID,
		Name:   t.Name,
		Number: t.Number,
		Shape:  t.Shape,
		Sides:  t.Sides,
		Seats:  make([]Seat, len(t.Seats)),
	}
	for i, s := range t.Seats {
		td.Seats[i] = Seat{
			ID:     s.ID,
			Number: s.Number,
			Mode:   s.Mode,
			Guest:  s.GuestID,
			Locked: s.Locked,
			X:      s.X,
			Y:      s.Y,
		}
	}
	return td
}

func tableFromDoc(td Table) (*table.Table, error) {
	if td.ID == "" {
		return nil, fmt.Errorf("table %d has no id", td.Number)
	}
	if _, err := table.ParseShape(string(td.Shape)); err != nil {
		return nil, fmt.Errorf("table %s: %w", td.ID, err)
	}
	if td.Shape == table.ShapeRectangle && td.Sides.Total() != len(td.Seats) {
		return nil, fmt.Errorf("table %s: %d seats for side counts totalling %d",
			td.ID, len(td.Seats), td.Sides.Total())
	}

	t := &table.Table{
		ID:     td.ID,
		Name:   td.Name,
		Number: td.Number,
		Shape:  td.Shape,
		Seats:  make([]*table.Seat, len(td.Seats)),
	}
	if td.Shape == table.ShapeRectangle {
		t.Sides = td.Sides
	}
	for i, sd := range td.Seats {
		mode := sd.Mode
		if mode == "" {
			mode = table.ModeDefault
		}
		if _, err := table.ParseMode(string(mode)); err != nil {
			return nil, fmt.Errorf("table %s seat %d: %w", td.ID, sd.Number, err)
		}
		t.Seats[i] = &table.Seat{
			ID:       sd.ID,
			TableID:  td.ID,
			Position: i,
			Number:   sd.Number,
			Mode:     mode,
			GuestID:  sd.Guest,
			Locked:   sd.Locked,
			X:        sd.X,
			Y:        sd.Y,
		}
	}
	return t, nil
}
