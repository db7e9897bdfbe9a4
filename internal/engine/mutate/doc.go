// Package mutate implements the selection-aware text transformations
// behind the editing surface: indentation, bracket pairing, list
// continuation, inline format toggling, link insertion, and block
// prefix toggling.
//
// Every function is pure: it takes a selection.State plus an
// operation-specific parameter and returns a (Result, bool) pair. The
// bool reports applicability; false means the operation does not apply
// to that state and the caller falls through to its default input
// handling. No function panics or returns an error. Inapplicability is
// the only non-success outcome.
//
// A Result carries the complete replacement text rather than a delta,
// with the new selection bounds computed against that text. Consumed
// reports whether the triggering input event must be suppressed so the
// host control does not apply it a second time.
package mutate
