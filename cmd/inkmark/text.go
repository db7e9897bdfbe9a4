package main

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mvickers/inkmark/internal/engine/mutate"
	"github.com/mvickers/inkmark/internal/engine/selection"
)

// lineOffsets returns the byte offset of every line start. The result
// always has at least one element (offset 0).
func lineOffsets(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// locate maps a byte offset to a 0-based row and rune column.
func locate(starts []int, text string, off int) (row, col int) {
	if off < 0 {
		off = 0
	}
	if off > len(text) {
		off = len(text)
	}
	row = sort.Search(len(starts), func(i int) bool { return starts[i] > off }) - 1
	col = utf8.RuneCountInString(text[starts[row]:off])
	return row, col
}

// offsetAt maps a row and rune column back to a byte offset, clamped to
// the end of the row.
func offsetAt(text string, starts []int, row, col int) int {
	if row < 0 {
		return 0
	}
	if row >= len(starts) {
		return len(text)
	}
	lineEnd := len(text)
	if row+1 < len(starts) {
		lineEnd = starts[row+1] - 1
	}

	off := starts[row]
	for ; col > 0 && off < lineEnd; col-- {
		_, size := utf8.DecodeRuneInString(text[off:])
		off += size
	}
	return off
}

// prevRuneStart returns the byte offset of the rune before pos, or 0.
func prevRuneStart(text string, pos int) int {
	if pos <= 0 {
		return 0
	}
	_, size := utf8.DecodeLastRuneInString(text[:pos])
	return pos - size
}

// nextRuneStart returns the byte offset just past the rune at pos, or
// the end of the text.
func nextRuneStart(text string, pos int) int {
	if pos >= len(text) {
		return len(text)
	}
	_, size := utf8.DecodeRuneInString(text[pos:])
	return pos + size
}

// insertLiteral builds the default edit for a key with no mutation: the
// selection is replaced by the literal text and the caret lands after
// it.
func insertLiteral(text string) func(selection.State) (mutate.Result, bool) {
	return func(st selection.State) (mutate.Result, bool) {
		var b strings.Builder
		b.Grow(len(st.Text) - st.Len() + len(text))
		b.WriteString(st.Text[:st.Start])
		b.WriteString(text)
		b.WriteString(st.Text[st.End:])
		caret := st.Start + len(text)
		return mutate.Result{Text: b.String(), Start: caret, End: caret, Consumed: true}, true
	}
}

// deleteBackward removes the selection, or the rune before a caret.
func deleteBackward(st selection.State) (mutate.Result, bool) {
	if !st.IsCaret() {
		return mutate.Result{Text: st.Text[:st.Start] + st.Text[st.End:], Start: st.Start, End: st.Start, Consumed: true}, true
	}
	if st.Start == 0 {
		return mutate.Result{}, false
	}
	p := prevRuneStart(st.Text, st.Start)
	return mutate.Result{Text: st.Text[:p] + st.Text[st.Start:], Start: p, End: p, Consumed: true}, true
}

// deleteForward removes the selection, or the rune after a caret.
func deleteForward(st selection.State) (mutate.Result, bool) {
	if !st.IsCaret() {
		return mutate.Result{Text: st.Text[:st.Start] + st.Text[st.End:], Start: st.Start, End: st.Start, Consumed: true}, true
	}
	if st.End >= len(st.Text) {
		return mutate.Result{}, false
	}
	n := nextRuneStart(st.Text, st.End)
	return mutate.Result{Text: st.Text[:st.Start] + st.Text[n:], Start: st.Start, End: st.Start, Consumed: true}, true
}
