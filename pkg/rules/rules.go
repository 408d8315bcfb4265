// Package rules evaluates user-authored proximity rules against the current
// seating and produces a violation report.
//
// A proximity rule names two guests that should sit together (adjacent seats)
// or apart (never adjacent). Violations are derived state: they are
// recomputed from scratch on demand and never persisted. Each unordered guest
// pair is reported at most once per rule kind, no matter how many rules or
// scan directions would trigger it, and the result is independent of the
// order of the input tables, seats, and rules.
package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tablewright/seatplan/pkg/guest"
	"github.com/tablewright/seatplan/pkg/table"
)

// Kind is the kind of a proximity rule (and of the violation it produces).
type Kind string

const (
	// SitTogether declares that two guests should occupy adjacent seats.
	SitTogether Kind = "together"
	// SitApart declares that two guests should never occupy adjacent seats.
	SitApart Kind = "apart"
)

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case SitTogether, SitApart:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown proximity rule kind %q", s)
}

// Rule is a user-authored proximity constraint between two guests.
// Rules are read-only inputs owned by the surrounding application.
type Rule struct {
	ID     string `json:"id,omitempty"`
	Kind   Kind   `json:"kind"`
	GuestA string `json:"guest_a"`
	GuestB string `json:"guest_b"`
}

// Violation is a broken proximity rule. GuestA and GuestB are in canonical
// (lexicographic) order so that a violation for an unordered pair compares
// equal no matter which direction triggered it. TableID is the table of
// GuestA's seat; SeatIDs lists both implicated seats.
type Violation struct {
	Kind    Kind     `json:"kind"`
	GuestA  string   `json:"guest_a"`
	GuestB  string   `json:"guest_b"`
	TableID string   `json:"table_id"`
	SeatIDs []string `json:"seat_ids"`
	Reason  string   `json:"reason"`
}

// SeatRef locates a seated guest.
type SeatRef struct {
	Table *table.Table
	Seat  *table.Seat
}

// SeatIndex maps every assigned guest ID to its seat. The coordinator
// guarantees a guest occupies at most one seat, so the mapping is unique.
func SeatIndex(tables []*table.Table) map[string]SeatRef {
	idx := make(map[string]SeatRef)
	for _, t := range tables {
		for _, s := range t.Seats {
			if s.Occupied() {
				idx[s.GuestID] = SeatRef{Table: t, Seat: s}
			}
		}
	}
	return idx
}

// Adjacent reports whether two seat references are adjacent: same table and
// the second seat's position in the first seat's cached adjacency set.
func Adjacent(a, b SeatRef) bool {
	return a.Table.ID == b.Table.ID && slices.Contains(a.Seat.Adjacent, b.Seat.Position)
}

// Detect evaluates every rule against the current seating and returns the
// violation set, sorted canonically. Rules referencing unseated or unknown
// guests never produce violations. Cost is linear in total seats plus rules,
// with the small constant of the per-seat adjacency fan-out.
func Detect(tables []*table.Table, ruleSet []Rule, guests guest.Directory) []Violation {
	seated := SeatIndex(tables)

	type pairKey struct {
		kind Kind
		a, b string
	}
	seen := make(map[pairKey]bool)
	var out []Violation

	for _, r := range ruleSet {
		refA, okA := seated[r.GuestA]
		refB, okB := seated[r.GuestB]
		if !okA || !okB || r.GuestA == r.GuestB {
			continue
		}

		a, b := canonicalPair(r.GuestA, r.GuestB)
		key := pairKey{kind: r.Kind, a: a, b: b}
		if seen[key] {
			continue
		}

		adjacent := Adjacent(refA, refB)
		var reason string
		switch r.Kind {
		case SitTogether:
			if adjacent {
				continue
			}
			reason = fmt.Sprintf("%s and %s should sit together but are not adjacent",
				displayName(guests, a), displayName(guests, b))
		case SitApart:
			if !adjacent {
				continue
			}
			reason = fmt.Sprintf("%s and %s should sit apart but are adjacent",
				displayName(guests, a), displayName(guests, b))
		default:
			continue
		}

		seen[key] = true
		refFirst, refSecond := seated[a], seated[b]
		out = append(out, Violation{
			Kind:    r.Kind,
			GuestA:  a,
			GuestB:  b,
			TableID: refFirst.Table.ID,
			SeatIDs: []string{refFirst.Seat.ID, refSecond.Seat.ID},
			Reason:  reason,
		})
	}

	slices.SortFunc(out, compareViolations)
	return out
}

// canonicalPair orders two guest IDs lexicographically.
func canonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

func displayName(guests guest.Directory, id string) string {
	if guests != nil {
		if g, ok := guests.Guest(id); ok {
			return g.DisplayName()
		}
	}
	return id
}

func compareViolations(a, b Violation) int {
	if c := strings.Compare(string(a.Kind), string(b.Kind)); c != 0 {
		return c
	}
	if c := strings.Compare(a.GuestA, b.GuestA); c != 0 {
		return c
	}
	return strings.Compare(a.GuestB, b.GuestB)
}
