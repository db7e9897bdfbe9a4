package mutate

import "github.com/mvickers/inkmark/internal/engine/selection"

// DefaultIndent is the indent unit used when the caller does not
// configure one.
const DefaultIndent = "  "

// Indent inserts the indent unit at the selection start and collapses
// the selection to a caret immediately after it. It always applies and
// always consumes the triggering event.
func Indent(st selection.State, unit string) (Result, bool) {
	if unit == "" {
		unit = DefaultIndent
	}
	pos := st.Start + len(unit)
	return Result{
		Text:     st.Text[:st.Start] + unit + st.Text[st.Start:],
		Start:    pos,
		End:      pos,
		Consumed: true,
	}, true
}
