package mutate

import (
	"strconv"
	"strings"

	"github.com/mvickers/inkmark/internal/engine/selection"
)

// ContinueList handles a line-break intent inside a list. On a line
// matching the list grammar it inserts a newline plus the next bullet:
// ordered numerals increment, task checkboxes reset to unticked with the
// user's marker preserved, plain bullets repeat unchanged, and both the
// leading indentation and the whitespace after the marker are carried
// over. Pressing line-break on an empty list item removes the bullet and
// leaves a bare empty line instead (breakout). Lines that are not list
// items do not apply, so an ordinary newline falls through.
func ContinueList(st selection.State) (Result, bool) {
	lineStart := st.LineStart(st.Start)
	line := st.Text[lineStart:st.Start]

	matched, next, ok := matchListPrefix(line)
	if !ok {
		return Result{}, false
	}

	// Nothing after the bullet: the user is exiting the list.
	if strings.TrimSpace(line[len(matched):]) == "" {
		return Result{
			Text:     st.Text[:lineStart] + st.Text[st.Start:],
			Start:    lineStart,
			End:      lineStart,
			Consumed: true,
		}, true
	}

	ins := "\n" + next
	pos := st.Start + len(ins)
	return Result{
		Text:     st.Text[:st.Start] + ins + st.Text[st.End:],
		Start:    pos,
		End:      pos,
		Consumed: true,
	}, true
}

// matchListPrefix matches the start of line against the list grammar
// and returns the matched prefix together with the bullet text that
// continues the list on the following line. Task items are tried before
// plain bullets because every task line also matches the bullet pattern.
func matchListPrefix(line string) (matched, next string, ok bool) {
	if m := taskRe.FindStringSubmatch(line); m != nil {
		return m[0], m[1] + m[2] + m[3] + "[ ]" + m[5], true
	}
	if m := orderedRe.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			// Numeral too large to represent; treat as plain text.
			return "", "", false
		}
		return m[0], m[1] + strconv.Itoa(n+1) + "." + m[3], true
	}
	if m := unorderedRe.FindStringSubmatch(line); m != nil {
		return m[0], m[0], true
	}
	return "", "", false
}
