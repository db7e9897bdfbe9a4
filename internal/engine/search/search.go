package search

import (
	"regexp"

	"github.com/mvickers/inkmark/internal/engine/selection"
)

// pattern compiles the query for literal, case-insensitive matching.
// QuoteMeta output always compiles, so the pattern is total over user
// input.
func pattern(query string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
}

// Find locates the next occurrence of query. Forward search starts at
// the selection end, backward search at the selection start; both wrap
// around to the opposite end of the buffer before giving up. Returns
// false when the query is empty or occurs nowhere, in which case the
// caller leaves the selection untouched.
func Find(st selection.State, query string, reverse bool) (selection.Span, bool) {
	if query == "" {
		return selection.Span{}, false
	}

	re := pattern(query)
	if reverse {
		return findBackward(st.Text, re, st.Start)
	}
	return findForward(st.Text, re, st.End)
}

func findForward(text string, re *regexp.Regexp, from int) (selection.Span, bool) {
	if from <= len(text) {
		if loc := re.FindStringIndex(text[from:]); loc != nil {
			return selection.Span{Start: from + loc[0], End: from + loc[1]}, true
		}
	}
	// Wrap around to the beginning.
	if loc := re.FindStringIndex(text); loc != nil {
		return selection.Span{Start: loc[0], End: loc[1]}, true
	}
	return selection.Span{}, false
}

func findBackward(text string, re *regexp.Regexp, before int) (selection.Span, bool) {
	if before >= 0 && before <= len(text) {
		if locs := re.FindAllStringIndex(text[:before], -1); locs != nil {
			last := locs[len(locs)-1]
			return selection.Span{Start: last[0], End: last[1]}, true
		}
	}
	// Wrap around to the end.
	if locs := re.FindAllStringIndex(text, -1); locs != nil {
		last := locs[len(locs)-1]
		return selection.Span{Start: last[0], End: last[1]}, true
	}
	return selection.Span{}, false
}
