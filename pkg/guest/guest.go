// Package guest defines the read-only guest reference consumed by the
// seating engine. Guest records are owned by the surrounding application's
// guest registry; the engine only reads the identity and host-party flag.
package guest

// Guest is an external guest reference.
type Guest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FromHost bool   `json:"from_host"`
}

// DisplayName returns the guest's name, falling back to the ID.
func (g Guest) DisplayName() string {
	if g.Name != "" {
		return g.Name
	}
	return g.ID
}

// Directory resolves guest IDs to guest records.
type Directory interface {
	// Guest returns the guest with the given ID and true, or false when the
	// ID does not resolve.
	Guest(id string) (Guest, bool)
}

// MapDirectory is an in-memory Directory backed by a map.
type MapDirectory map[string]Guest

// NewMapDirectory builds a MapDirectory from a guest list, keyed by ID.
func NewMapDirectory(guests []Guest) MapDirectory {
	m := make(MapDirectory, len(guests))
	for _, g := range guests {
		m[g.ID] = g
	}
	return m
}

// Guest implements Directory.
func (m MapDirectory) Guest(id string) (Guest, bool) {
	g, ok := m[id]
	return g, ok
}
