package rules

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/tablewright/seatplan/pkg/guest"
	"github.com/tablewright/seatplan/pkg/table"
)

func buildRound(t *testing.T, name string, seats int) *table.Table {
	t.Helper()
	tbl, err := table.Build("", name, 1, table.Config{
		Shape:     table.ShapeRound,
		Seats:     seats,
		Direction: table.Clockwise,
		Pattern:   table.PatternSequential,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tbl
}

func seat(tbl *table.Table, pos int, guestID string) {
	tbl.Seats[pos].GuestID = guestID
}

func testGuests() guest.Directory {
	return guest.NewMapDirectory([]guest.Guest{
		{ID: "g1", Name: "Ada", FromHost: true},
		{ID: "g2", Name: "Ben", FromHost: false},
		{ID: "g3", Name: "Cleo", FromHost: true},
	})
}

func TestDetect_SitTogetherNotAdjacent(t *testing.T) {
	tbl := buildRound(t, "t1", 8)
	seat(tbl, 0, "g1")
	seat(tbl, 4, "g2") // across the table, not adjacent

	ruleSet := []Rule{
		{Kind: SitTogether, GuestA: "g1", GuestB: "g2"},
		{Kind: SitTogether, GuestA: "g2", GuestB: "g1"}, // reverse direction, same pair
	}

	got := Detect([]*table.Table{tbl}, ruleSet, testGuests())
	if len(got) != 1 {
		t.Fatalf("Detect() returned %d violations, want 1", len(got))
	}
	v := got[0]
	if v.Kind != SitTogether || v.GuestA != "g1" || v.GuestB != "g2" {
		t.Errorf("violation = %+v, want SitTogether for canonical pair (g1, g2)", v)
	}
	if len(v.SeatIDs) != 2 {
		t.Errorf("SeatIDs = %v, want both implicated seats", v.SeatIDs)
	}
}

func TestDetect_SitTogetherSatisfied(t *testing.T) {
	tbl := buildRound(t, "t1", 8)
	seat(tbl, 0, "g1")
	seat(tbl, 1, "g2")

	got := Detect([]*table.Table{tbl}, []Rule{{Kind: SitTogether, GuestA: "g1", GuestB: "g2"}}, testGuests())
	if len(got) != 0 {
		t.Errorf("Detect() = %v, want no violations for adjacent pair", got)
	}
}

func TestDetect_SitTogetherAcrossTables(t *testing.T) {
	t1 := buildRound(t, "t1", 4)
	t2 := buildRound(t, "t2", 4)
	seat(t1, 0, "g1")
	seat(t2, 0, "g2")

	got := Detect([]*table.Table{t1, t2}, []Rule{{Kind: SitTogether, GuestA: "g1", GuestB: "g2"}}, testGuests())
	if len(got) != 1 {
		t.Fatalf("Detect() returned %d violations, want 1 for guests at different tables", len(got))
	}
}

func TestDetect_SitApartAdjacent(t *testing.T) {
	tbl := buildRound(t, "t1", 6)
	seat(tbl, 2, "g1")
	seat(tbl, 3, "g2")

	got := Detect([]*table.Table{tbl}, []Rule{{Kind: SitApart, GuestA: "g2", GuestB: "g1"}}, testGuests())
	if len(got) != 1 {
		t.Fatalf("Detect() returned %d violations, want 1", len(got))
	}
	if got[0].Kind != SitApart || got[0].GuestA != "g1" {
		t.Errorf("violation = %+v, want canonical SitApart (g1, g2)", got[0])
	}
	if got[0].TableID != tbl.ID {
		t.Errorf("TableID = %q, want %q", got[0].TableID, tbl.ID)
	}
}

func TestDetect_UnseatedGuestsIgnored(t *testing.T) {
	tbl := buildRound(t, "t1", 6)
	seat(tbl, 0, "g1")

	ruleSet := []Rule{
		{Kind: SitTogether, GuestA: "g1", GuestB: "g2"},  // g2 unseated
		{Kind: SitApart, GuestA: "g2", GuestB: "g3"},     // both unseated
		{Kind: SitTogether, GuestA: "ghost", GuestB: ""}, // unknown ids
	}
	if got := Detect([]*table.Table{tbl}, ruleSet, testGuests()); len(got) != 0 {
		t.Errorf("Detect() = %v, want none for unseated guests", got)
	}
}

func TestDetect_MultiplePartnersAllReported(t *testing.T) {
	// Three sit-together partners cannot all be adjacent; every broken pair
	// is surfaced rather than a subset.
	tbl := buildRound(t, "t1", 8)
	seat(tbl, 0, "g1")
	seat(tbl, 3, "g2")
	seat(tbl, 6, "g3")

	ruleSet := []Rule{
		{Kind: SitTogether, GuestA: "g1", GuestB: "g2"},
		{Kind: SitTogether, GuestA: "g1", GuestB: "g3"},
	}
	got := Detect([]*table.Table{tbl}, ruleSet, testGuests())
	if len(got) != 2 {
		t.Fatalf("Detect() returned %d violations, want 2 (one per partner)", len(got))
	}
}

func TestDetect_OrderInsensitive(t *testing.T) {
	build := func(shuffleSeed int64) []Violation {
		t1 := buildRound(t, "alpha", 8)
		t2 := buildRound(t, "beta", 6)
		t1.ID, t2.ID = "table-a", "table-b"
		for _, tbl := range []*table.Table{t1, t2} {
			for pos, s := range tbl.Seats {
				s.ID = fmt.Sprintf("%s-%d", tbl.ID, pos)
			}
		}
		seat(t1, 0, "g1")
		seat(t1, 4, "g2")
		seat(t2, 0, "g3")
		seat(t2, 1, "g4")

		ruleSet := []Rule{
			{Kind: SitTogether, GuestA: "g1", GuestB: "g2"},
			{Kind: SitApart, GuestA: "g3", GuestB: "g4"},
			{Kind: SitTogether, GuestA: "g2", GuestB: "g1"},
		}

		tables := []*table.Table{t1, t2}
		r := rand.New(rand.NewSource(shuffleSeed))
		r.Shuffle(len(tables), func(i, j int) { tables[i], tables[j] = tables[j], tables[i] })
		r.Shuffle(len(ruleSet), func(i, j int) { ruleSet[i], ruleSet[j] = ruleSet[j], ruleSet[i] })
		for _, tbl := range tables {
			r.Shuffle(len(tbl.Seats), func(i, j int) { tbl.Seats[i], tbl.Seats[j] = tbl.Seats[j], tbl.Seats[i] })
		}
		return Detect(tables, ruleSet, nil)
	}

	base := build(1)
	if len(base) != 2 {
		t.Fatalf("Detect() returned %d violations, want 2", len(base))
	}
	for seed := int64(2); seed < 8; seed++ {
		if got := build(seed); !reflect.DeepEqual(got, base) {
			t.Errorf("Detect() with shuffle seed %d = %+v, want %+v", seed, got, base)
		}
	}
}

func TestDetect_ReasonUsesGuestNames(t *testing.T) {
	tbl := buildRound(t, "t1", 8)
	seat(tbl, 0, "g1")
	seat(tbl, 4, "g2")

	got := Detect([]*table.Table{tbl}, []Rule{{Kind: SitTogether, GuestA: "g1", GuestB: "g2"}}, testGuests())
	if len(got) != 1 {
		t.Fatalf("Detect() returned %d violations, want 1", len(got))
	}
	want := "Ada and Ben should sit together but are not adjacent"
	if got[0].Reason != want {
		t.Errorf("Reason = %q, want %q", got[0].Reason, want)
	}
}
