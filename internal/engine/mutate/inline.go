package mutate

import (
	"strings"

	"github.com/mvickers/inkmark/internal/engine/selection"
)

// ToggleInline toggles an inline format marker (such as "**", "*", "`",
// or "~~") around the selection. Three cases, checked in order:
//
//  1. The selection itself starts and ends with the marker: unwrap it,
//     with the new selection covering the unwrapped text.
//  2. The text immediately outside the selection carries the marker on
//     both sides: remove the surrounding pair, selection bounds shift
//     back by the marker length.
//  3. Otherwise wrap: the marker is inserted on both sides and the
//     originally selected text stays selected.
//
// An empty marker does not apply.
func ToggleInline(st selection.State, marker string) (Result, bool) {
	if marker == "" {
		return Result{}, false
	}
	n := len(marker)
	sel := st.Selected()

	// The length guard keeps a selection shorter than two markers from
	// matching itself as both prefix and suffix.
	if len(sel) >= 2*n && strings.HasPrefix(sel, marker) && strings.HasSuffix(sel, marker) {
		inner := sel[n : len(sel)-n]
		return Result{
			Text:     st.Text[:st.Start] + inner + st.Text[st.End:],
			Start:    st.Start,
			End:      st.Start + len(inner),
			Consumed: true,
		}, true
	}

	if st.Start >= n && st.End+n <= len(st.Text) &&
		st.Text[st.Start-n:st.Start] == marker && st.Text[st.End:st.End+n] == marker {
		return Result{
			Text:     st.Text[:st.Start-n] + sel + st.Text[st.End+n:],
			Start:    st.Start - n,
			End:      st.End - n,
			Consumed: true,
		}, true
	}

	return Result{
		Text:     st.Text[:st.Start] + marker + sel + marker + st.Text[st.End:],
		Start:    st.Start + n,
		End:      st.End + n,
		Consumed: true,
	}, true
}

// InsertLink inserts a Markdown link skeleton. A caret gets the empty
// form "[]()" with the caret between the brackets; a selection becomes
// the link text with the caret inside the parentheses, ready for the
// URL. Always applies.
func InsertLink(st selection.State) (Result, bool) {
	if st.IsCaret() {
		pos := st.Start + 1
		return Result{
			Text:     st.Text[:st.Start] + "[]()" + st.Text[st.End:],
			Start:    pos,
			End:      pos,
			Consumed: true,
		}, true
	}

	sel := st.Selected()
	pos := st.Start + len(sel) + 3
	return Result{
		Text:     st.Text[:st.Start] + "[" + sel + "]()" + st.Text[st.End:],
		Start:    pos,
		End:      pos,
		Consumed: true,
	}, true
}
