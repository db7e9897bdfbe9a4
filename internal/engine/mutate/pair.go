package mutate

import "github.com/mvickers/inkmark/internal/engine/selection"

// pairs maps each auto-closing opener to its closer. Quotes and
// backticks pair with themselves.
var pairs = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
	'"': '"',
	'`': '`',
}

// isCloser reports whether c closes any known pair.
func isCloser(c byte) bool {
	for _, closer := range pairs {
		if closer == c {
			return true
		}
	}
	return false
}

// ClosePair auto-closes a typed opener. With a range selected, the pair
// wraps the selection and the inner text stays selected; with a caret,
// the pair is inserted with the caret between the two characters.
// Characters that are not known openers do not apply.
func ClosePair(st selection.State, typed string) (Result, bool) {
	if len(typed) != 1 {
		return Result{}, false
	}
	closer, ok := pairs[typed[0]]
	if !ok {
		return Result{}, false
	}

	if st.IsCaret() {
		pos := st.Start + 1
		return Result{
			Text:     st.Text[:st.Start] + typed + string(closer) + st.Text[st.End:],
			Start:    pos,
			End:      pos,
			Consumed: true,
		}, true
	}

	return Result{
		Text:     st.Text[:st.Start] + typed + st.Selected() + string(closer) + st.Text[st.End:],
		Start:    st.Start + 1,
		End:      st.End + 1,
		Consumed: true,
	}, true
}

// SkipCloser advances the caret past an already-present closer instead
// of inserting a duplicate. Applies only when the typed character is a
// known closer and the character at the caret equals it. The text is
// never modified.
func SkipCloser(st selection.State, typed string) (Result, bool) {
	if len(typed) != 1 || !st.IsCaret() {
		return Result{}, false
	}
	c := typed[0]
	if !isCloser(c) {
		return Result{}, false
	}
	if st.Start >= len(st.Text) || st.Text[st.Start] != c {
		return Result{}, false
	}
	pos := st.Start + 1
	return Result{Text: st.Text, Start: pos, End: pos, Consumed: true}, true
}

// DeletePair deletes an empty pair around the caret in one step.
// Applies when the character before the caret is a known opener and the
// character at the caret is its matching closer.
func DeletePair(st selection.State) (Result, bool) {
	if !st.IsCaret() || st.Start == 0 || st.Start >= len(st.Text) {
		return Result{}, false
	}
	closer, ok := pairs[st.Text[st.Start-1]]
	if !ok || st.Text[st.Start] != closer {
		return Result{}, false
	}
	pos := st.Start - 1
	return Result{
		Text:     st.Text[:pos] + st.Text[st.Start+1:],
		Start:    pos,
		End:      pos,
		Consumed: true,
	}, true
}
