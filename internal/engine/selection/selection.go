package selection

import (
	"fmt"
	"strings"
)

// State is a buffer snapshot plus the active selection within it.
// Start and End are byte offsets with 0 <= Start <= End <= len(Text).
// When Start == End the selection is a caret.
// State is an immutable value type.
type State struct {
	Text  string
	Start int // Lower selection bound
	End   int // Upper selection bound (caret when equal to Start)
}

// Caret returns a collapsed selection at pos, clamped to the text bounds.
func Caret(text string, pos int) State {
	return State{Text: text, Start: pos, End: pos}.Clamp()
}

// Select returns a range selection over [start, end), clamped to the text bounds.
func Select(text string, start, end int) State {
	return State{Text: text, Start: start, End: end}.Clamp()
}

// IsCaret returns true if the selection has no extent.
func (s State) IsCaret() bool {
	return s.Start == s.End
}

// Len returns the length of the selection in bytes.
func (s State) Len() int {
	return s.End - s.Start
}

// Selected returns the selected text. Empty for a caret.
func (s State) Selected() string {
	return s.Text[s.Start:s.End]
}

// Span returns the selection bounds without the text.
func (s State) Span() Span {
	return Span{Start: s.Start, End: s.End}
}

// WithSpan returns a copy of s selecting sp, clamped to the text bounds.
func (s State) WithSpan(sp Span) State {
	return State{Text: s.Text, Start: sp.Start, End: sp.End}.Clamp()
}

// Clamp returns a copy with the bounds invariant restored:
// offsets limited to [0, len(Text)] and ordered so Start <= End.
func (s State) Clamp() State {
	start, end := s.Start, s.End
	if start < 0 {
		start = 0
	} else if start > len(s.Text) {
		start = len(s.Text)
	}
	if end < 0 {
		end = 0
	} else if end > len(s.Text) {
		end = len(s.Text)
	}
	if start > end {
		start, end = end, start
	}
	return State{Text: s.Text, Start: start, End: end}
}

// Equal returns true if both states carry the same text and selection.
func (s State) Equal(other State) bool {
	return s.Text == other.Text && s.Start == other.Start && s.End == other.End
}

// LineStart returns the offset of the first byte of the line containing pos.
func (s State) LineStart(pos int) int {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.Text) {
		pos = len(s.Text)
	}
	return strings.LastIndexByte(s.Text[:pos], '\n') + 1
}

// LineEnd returns the offset just past the last byte of the line containing
// pos, excluding the line's terminating newline.
func (s State) LineEnd(pos int) int {
	if pos < 0 {
		pos = 0
	}
	if pos >= len(s.Text) {
		return len(s.Text)
	}
	i := strings.IndexByte(s.Text[pos:], '\n')
	if i < 0 {
		return len(s.Text)
	}
	return pos + i
}

// String returns a debug representation of the selection.
func (s State) String() string {
	if s.IsCaret() {
		return fmt.Sprintf("Caret(%d)", s.Start)
	}
	return fmt.Sprintf("Selection(%d..%d)", s.Start, s.End)
}

// Span is a selection without its text: a pair of byte offsets
// with Start <= End for any span produced by this package.
type Span struct {
	Start int
	End   int
}

// IsCaret returns true if the span has no extent.
func (sp Span) IsCaret() bool {
	return sp.Start == sp.End
}

// Len returns the span length in bytes.
func (sp Span) Len() int {
	return sp.End - sp.Start
}

// Clamp returns the span limited to [0, max] with Start <= End.
func (sp Span) Clamp(max int) Span {
	start, end := sp.Start, sp.End
	if start < 0 {
		start = 0
	} else if start > max {
		start = max
	}
	if end < 0 {
		end = 0
	} else if end > max {
		end = max
	}
	if start > end {
		start, end = end, start
	}
	return Span{Start: start, End: end}
}

// String returns a debug representation of the span.
func (sp Span) String() string {
	if sp.IsCaret() {
		return fmt.Sprintf("Caret(%d)", sp.Start)
	}
	return fmt.Sprintf("Span(%d..%d)", sp.Start, sp.End)
}
