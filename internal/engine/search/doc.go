// Package search implements find and replace over selection states.
//
// All functions are stateless: they take the live selection state and
// return spans or new states for the caller to apply through its normal
// edit path, which keeps every replacement undoable. Queries are always
// matched literally and case-insensitively; "no match" is an ordinary
// return value, not an error.
package search
