package planfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tablewright/seatplan/pkg/guest"
	"github.com/tablewright/seatplan/pkg/plan"
	"github.com/tablewright/seatplan/pkg/rules"
	"github.com/tablewright/seatplan/pkg/table"
)

var testGuests = []guest.Guest{
	{ID: "ada", Name: "Ada", FromHost: true},
	{ID: "eve", Name: "Eve"},
}

func buildTestPlan(t *testing.T) *plan.Plan {
	t.Helper()
	p := plan.New(guest.NewMapDirectory(testGuests))
	tbl, err := p.AddTable("Head", table.Config{
		Shape:     table.ShapeRound,
		Seats:     4,
		Direction: table.Clockwise,
		Pattern:   table.PatternSequential,
	})
	if err != nil {
		t.Fatalf("AddTable() error: %v", err)
	}
	if res := p.Assign(tbl.ID, tbl.Seats[0].ID, "ada"); !res.OK {
		t.Fatalf("Assign() failed: %v", res.Reasons)
	}
	p.SetLocked(tbl.ID, tbl.Seats[2].ID, true)
	p.SetRules([]rules.Rule{{ID: "r1", Kind: rules.SitApart, GuestA: "ada", GuestB: "eve"}})
	return p
}

func TestRoundTrip(t *testing.T) {
	p := buildTestPlan(t)

	data, err := MarshalPlan(p, testGuests, "reception")
	if err != nil {
		t.Fatalf("MarshalPlan() error: %v", err)
	}
	restored, err := ReadPlan(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadPlan() error: %v", err)
	}

	orig, got := p.Tables()[0], restored.Tables()[0]
	if got.ID != orig.ID || got.Name != orig.Name || got.Number != orig.Number {
		t.Errorf("restored table identity = %s/%s/%d, want %s/%s/%d",
			got.ID, got.Name, got.Number, orig.ID, orig.Name, orig.Number)
	}
	if got.SeatCount() != orig.SeatCount() {
		t.Fatalf("restored seat count = %d, want %d", got.SeatCount(), orig.SeatCount())
	}
	for i, s := range got.Seats {
		o := orig.Seats[i]
		if s.ID != o.ID || s.Number != o.Number || s.Mode != o.Mode ||
			s.GuestID != o.GuestID || s.Locked != o.Locked {
			t.Errorf("seat %d = %+v, want %+v", i, s, o)
		}
	}
	if len(restored.Rules()) != 1 {
		t.Errorf("restored rules = %v, want 1", restored.Rules())
	}
}

func TestAdjacencyRecomputedOnLoad(t *testing.T) {
	p := buildTestPlan(t)

	data, err := MarshalPlan(p, testGuests, "")
	if err != nil {
		t.Fatalf("MarshalPlan() error: %v", err)
	}
	if bytes.Contains(data, []byte("adjacent")) {
		t.Error("document contains adjacency data, want it derived on load")
	}
	if bytes.Contains(data, []byte("violation")) {
		t.Error("document contains violation data, want it derived on load")
	}

	restored, err := ReadPlan(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadPlan() error: %v", err)
	}
	seat := restored.Tables()[0].Seats[0]
	if len(seat.Adjacent) != 2 {
		t.Errorf("restored seat adjacency = %v, want two neighbors", seat.Adjacent)
	}
}

func TestViolationsRecomputedOnLoad(t *testing.T) {
	p := buildTestPlan(t)
	tbl := p.Tables()[0]
	if res := p.Assign(tbl.ID, tbl.Seats[1].ID, "eve"); !res.OK {
		t.Fatalf("Assign() failed: %v", res.Reasons)
	}

	data, err := MarshalPlan(p, testGuests, "")
	if err != nil {
		t.Fatalf("MarshalPlan() error: %v", err)
	}
	restored, err := ReadPlan(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadPlan() error: %v", err)
	}
	if got := restored.Violations(); len(got) != 1 {
		t.Errorf("restored Violations() = %v, want the sit-apart violation", got)
	}
}

func TestWriteAndReadFile(t *testing.T) {
	p := buildTestPlan(t)
	path := t.TempDir() + "/plan.json"

	if err := WritePlanFile(p, testGuests, "reception", path); err != nil {
		t.Fatalf("WritePlanFile() error: %v", err)
	}
	restored, err := ReadPlanFile(path)
	if err != nil {
		t.Fatalf("ReadPlanFile() error: %v", err)
	}
	if restored.TableCount() != 1 {
		t.Errorf("restored TableCount() = %d, want 1", restored.TableCount())
	}
}

func TestDocumentFileRoundTrip(t *testing.T) {
	p := buildTestPlan(t)
	doc := FromPlan(p, testGuests, "reception")
	path := t.TempDir() + "/plan.json"

	if err := WriteDocumentFile(doc, path); err != nil {
		t.Fatalf("WriteDocumentFile() error: %v", err)
	}
	got, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile() error: %v", err)
	}
	if got.Name != doc.Name || len(got.Tables) != len(doc.Tables) {
		t.Errorf("round trip = %q with %d tables, want %q with %d", got.Name, len(got.Tables), doc.Name, len(doc.Tables))
	}
	if got.Version != Version {
		t.Errorf("Version = %d, want %d", got.Version, Version)
	}
}

func TestToPlanErrors(t *testing.T) {
	valid := func() Document {
		return Document{
			Version: Version,
			Tables: []Table{{
				ID:    "t1",
				Shape: table.ShapeRound,
				Seats: []Seat{{ID: "s1", Number: 1}},
			}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Document)
		wantErr string
	}{
		{"wrong version", func(d *Document) { d.Version = 99 }, "version"},
		{"missing table id", func(d *Document) { d.Tables[0].ID = "" }, "no id"},
		{"bad shape", func(d *Document) { d.Tables[0].Shape = "oval" }, "shape"},
		{"bad mode", func(d *Document) { d.Tables[0].Seats[0].Mode = "vip" }, "mode"},
		{"bad rule kind", func(d *Document) {
			d.Rules = []Rule{{ID: "r1", Kind: "friends", GuestA: "a", GuestB: "b"}}
		}, "rule"},
		{"side count mismatch", func(d *Document) {
			d.Tables[0].Shape = table.ShapeRectangle
			d.Tables[0].Sides = table.Sides{Top: 3}
		}, "side counts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := valid()
			tt.mutate(&doc)
			_, err := ToPlan(doc)
			if err == nil {
				t.Fatal("ToPlan() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ToPlan() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}

	if _, err := ToPlan(valid()); err != nil {
		t.Errorf("ToPlan(valid) error: %v", err)
	}
}

func TestToPlanReconcilesDuplicateGuest(t *testing.T) {
	doc := FromPlan(buildTestPlan(t), testGuests, "edited")
	doc.Tables[0].Seats[3].Guest = "ada"

	restored, err := ToPlan(doc)
	if err != nil {
		t.Fatalf("ToPlan() error: %v", err)
	}
	tbl := restored.Tables()[0]
	if got := tbl.Seats[3].GuestID; got != "" {
		t.Errorf("duplicate seat guest = %q, want cleared", got)
	}
	if _, seatID, ok := restored.GuestSeat("ada"); !ok || seatID != tbl.Seats[0].ID {
		t.Errorf("GuestSeat(ada) = %q, %v, want first seat %q", seatID, ok, tbl.Seats[0].ID)
	}
}
