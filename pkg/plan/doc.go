// Package plan owns the committed seating state and coordinates every
// mutation of it.
//
// A [Plan] is an explicit world handle: it holds the tables, the read-only
// guest directory, and the proximity rules, with no package-level state, so
// independent plans (tests, multiple sessions) never interfere.
//
// # Mutation Semantics
//
// Assignments and swaps validate against seat mode and lock state before
// anything is committed. Compound operations are all-or-nothing: a swap that
// fails in either direction leaves both seats untouched, and no reader can
// observe a half-applied state. After every committed mutation the full
// violation report is recomputed eagerly; with tables of tens to low hundreds
// of seats this is cheap and keeps the report trivially consistent.
//
// Validation calls (ValidateAssignment, ValidateSwap, and the
// DetectViolationsAfter variants) follow simulate-then-commit: they deep-copy
// only the affected tables, apply the hypothetical change to the copy, and
// discard it. Repeated failed validations are side-effect free.
//
// Failures are reported as a [Result] with a success flag and reason list,
// never as panics; callers retry with different inputs at will.
package plan
