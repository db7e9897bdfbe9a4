// Package selection defines the value types shared by the editing engines.
//
// A State carries a buffer's full text together with the active selection
// as a pair of byte offsets satisfying 0 <= Start <= End <= len(Text).
// Equal offsets represent a caret; unequal offsets represent a range.
// State is an immutable value type: engines take a State and return new
// values rather than mutating in place, so a State can be shared freely.
//
// Span is the text-free form of a selection, used where bounds are stored
// or reported without their buffer (history entries, search results).
package selection
