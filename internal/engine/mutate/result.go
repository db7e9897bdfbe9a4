package mutate

import "github.com/mvickers/inkmark/internal/engine/selection"

// Result is the outcome of an applicable mutation: the full replacement
// text, the selection to restore against that text, and whether the
// triggering input event should be suppressed from default handling.
type Result struct {
	Text     string
	Start    int
	End      int
	Consumed bool
}

// State returns the result as a selection state over the new text.
func (r Result) State() selection.State {
	return selection.State{Text: r.Text, Start: r.Start, End: r.End}
}

// Span returns the result's selection bounds.
func (r Result) Span() selection.Span {
	return selection.Span{Start: r.Start, End: r.End}
}
