package search

import (
	"strings"

	"github.com/mvickers/inkmark/internal/engine/selection"
)

// ReplaceStatus reports what ReplaceOne did.
type ReplaceStatus int

const (
	// NoMatch means the query occurs nowhere in the buffer.
	NoMatch ReplaceStatus = iota
	// Found means the next occurrence was selected without replacing.
	Found
	// Replaced means the selection was substituted.
	Replaced
)

// String returns the status name.
func (s ReplaceStatus) String() string {
	switch s {
	case NoMatch:
		return "no match"
	case Found:
		return "found"
	case Replaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// ReplaceOne substitutes the current selection with repl when the
// selection equals the query case-insensitively, places the caret after
// the replacement, and immediately queues up the next occurrence when
// one exists. When the selection does not match, it performs a plain
// find-next instead, selecting the occurrence for a subsequent call.
// This is a two-step flow: find first, then replace what is highlighted.
func ReplaceOne(st selection.State, query, repl string) (selection.State, ReplaceStatus) {
	if query == "" {
		return st, NoMatch
	}

	if !st.IsCaret() && strings.EqualFold(st.Selected(), query) {
		out := selection.Caret(st.Text[:st.Start]+repl+st.Text[st.End:], st.Start+len(repl))
		if span, ok := Find(out, query, false); ok {
			out = out.WithSpan(span)
		}
		return out, Replaced
	}

	span, ok := Find(st, query, false)
	if !ok {
		return st, NoMatch
	}
	return st.WithSpan(span), Found
}

// ReplaceAll substitutes every occurrence of query, matched literally
// and case-insensitively, and returns the new state together with the
// number of replacements. Zero is a valid outcome, not an error. The
// replacement text is inserted literally. The selection is clamped
// against the new text.
func ReplaceAll(st selection.State, query, repl string) (selection.State, int) {
	if query == "" {
		return st, 0
	}

	re := pattern(query)
	matches := re.FindAllStringIndex(st.Text, -1)
	if matches == nil {
		return st, 0
	}

	out := selection.State{
		Text:  re.ReplaceAllLiteralString(st.Text, repl),
		Start: st.Start,
		End:   st.End,
	}
	return out.Clamp(), len(matches)
}
