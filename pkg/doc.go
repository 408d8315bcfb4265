// Package pkg provides the core libraries for the Seatplan seating engine.
//
// # Overview
//
// Seatplan turns declarative table configurations into fully materialized
// seating plans, keeps proximity rules satisfied while guests are seated and
// moved, and serializes the result for storage and exchange. The pkg
// directory is organized into four main areas:
//
//  1. Domain logic: [table], [rules], [plan] (geometry, constraints, editing)
//  2. Configuration: [config], [guest] (TOML input and the guest registry)
//  3. Serialization & storage: [planfile], [store], [cache]
//  4. Orchestration: [pipeline], [observability], [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow through Seatplan:
//
//	TOML configuration
//	         ↓
//	    [config] package (parse + validate)
//	         ↓
//	    [table] package (seat geometry, numbering, modes, adjacency)
//	         ↓
//	    [plan] package (assignment coordination + rule checking)
//	         ↓
//	    [planfile] package (versioned JSON documents)
//
// # Quick Start
//
// Build a plan from a configuration and check the rules:
//
//	import (
//	    "github.com/tablewright/seatplan/pkg/config"
//	)
//
//	// 1. Load and validate the configuration
//	f, _ := config.LoadFile("wedding.toml")
//
//	// 2. Materialize tables, seats, and preassigned guests
//	p, _ := config.Build(f)
//
//	// 3. Seat someone and inspect the report
//	res := p.Assign(tableID, seatID, "ada")
//	for _, v := range p.Violations() {
//	    fmt.Println(v.Reason)
//	}
//
// # Main Packages
//
// ## Domain Logic
//
// [table] - Table geometry and seat materialization. Round tables place
// seats at equal angular spacing; rectangular tables distribute them over
// four sides with opposite-side adjacency. Numbering patterns (sequential,
// opposite) and mode patterns (uniform, alternating, repeating, ratio,
// specific) are applied here.
//
// [rules] - Proximity rules between guest pairs. Sit-together rules demand
// adjacency once both guests are seated; sit-apart rules forbid it.
// Violation reports are pure functions of the seating state.
//
// [plan] - The assignment coordinator. All seat mutations (assign, move,
// clear, swap, lock, table replacement) go through one lock, validate
// first, and commit atomically. What-if analysis runs the same checks on a
// deep copy of the affected tables.
//
// ## Configuration
//
// [config] - TOML configuration describing guests, tables, rules, and
// preassignments. Validation is strict: every referenced guest, table, and
// seat must exist before anything is built.
//
// [guest] - The read-only guest reference and directory interface. Guest
// records are owned by the surrounding application.
//
// ## Serialization & Storage
//
// [planfile] - Versioned JSON documents for plans. Derived state
// (adjacency, violations) is never serialized; it is recomputed on load.
//
// [store] - Named plan persistence with file (default) and MongoDB
// backends.
//
// [cache] - Content-addressed build cache with file, Redis, and null
// backends plus retry helpers for transient backend failures.
//
// ## Orchestration
//
// [pipeline] - The load → build → check pipeline shared by the CLI, the
// HTTP API, and the TUI. Ensures consistent behavior across all entry
// points.
//
// [observability] - Pluggable hooks for pipeline stages, cache traffic,
// and HTTP requests.
//
// [errors] - Coded errors with user-facing messages, plus identifier
// validation shared by the storage layers.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/plan/...     # Specific package
//
// [table]: https://pkg.go.dev/github.com/tablewright/seatplan/pkg/table
// [rules]: https://pkg.go.dev/github.com/tablewright/seatplan/pkg/rules
// [plan]: https://pkg.go.dev/github.com/tablewright/seatplan/pkg/plan
// [config]: https://pkg.go.dev/github.com/tablewright/seatplan/pkg/config
// [guest]: https://pkg.go.dev/github.com/tablewright/seatplan/pkg/guest
// [planfile]: https://pkg.go.dev/github.com/tablewright/seatplan/pkg/planfile
// [store]: https://pkg.go.dev/github.com/tablewright/seatplan/pkg/store
// [cache]: https://pkg.go.dev/github.com/tablewright/seatplan/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/tablewright/seatplan/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/tablewright/seatplan/pkg/observability
// [errors]: https://pkg.go.dev/github.com/tablewright/seatplan/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/tablewright/seatplan/pkg/buildinfo
package pkg
