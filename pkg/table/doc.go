// Package table defines the seating data model and the algorithms that derive
// seat geometry, numbering, modes, and adjacency from declarative table
// configuration.
//
// A [Table] is built in a single batch from a [Config]: positions and spatial
// coordinates come from the shape (round or rectangular), human-facing seat
// numbers from the ordering pattern, per-seat modes from the mode pattern, and
// the adjacency sets from the shape's neighbor rules. Structural changes never
// resize in place - a modified table is rebuilt from scratch with [Build].
//
// # Position Order
//
// Rectangular tables assign positions in a fixed side order: top (left to
// right), right (top to bottom), bottom (right to left), left (bottom to top),
// with each side's seats contiguous in the position array. Every index formula
// in this package (opposite mapping, corner links, ordering walks) depends on
// this order.
//
// # Adjacency
//
// Round tables treat the two rotational neighbors as adjacent. Rectangular
// tables union three kinds of adjacency: neighbors within the same side,
// the facing seat on the opposite side (only when both sides seat the same
// number of people), and the nearest seat of the perpendicular side across a
// table corner. The relation is always symmetric.
//
// Assignment state on a [Seat] (GuestID, Locked) is owned by the plan
// coordinator; this package only lays seats out.
package table
