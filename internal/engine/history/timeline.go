package history

import "github.com/mvickers/inkmark/internal/engine/selection"

// DefaultLimit is the maximum number of entries a timeline keeps before
// evicting from the front.
const DefaultLimit = 50

// Entry is one immutable history snapshot: full document content plus
// the selection active when it was committed.
type Entry struct {
	Content string
	Sel     selection.Span
}

// Timeline is an ordered, capped list of snapshots with an index at the
// last committed entry. The entry at the index always holds the
// document's last committed content; live content may run ahead while a
// debounced commit is pending.
//
// Timeline is not safe for concurrent use.
type Timeline struct {
	entries []Entry
	index   int
	limit   int
}

// NewTimeline returns a timeline seeded with a single entry holding the
// initial content and a collapsed selection. A limit of zero or less
// means DefaultLimit.
func NewTimeline(initial string, limit int) *Timeline {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Timeline{
		entries: []Entry{{Content: initial}},
		index:   0,
		limit:   limit,
	}
}

// Commit appends a new snapshot and reports whether one was created.
// Content identical to the current entry commits nothing, so no-op
// edits never produce duplicate snapshots. Committing after undos
// discards the abandoned future, and exceeding the cap evicts the
// oldest entry with the index rebased onto the new tail.
func (t *Timeline) Commit(content string, sel selection.Span) bool {
	if content == t.entries[t.index].Content {
		return false
	}

	t.entries = append(t.entries[:t.index+1], Entry{Content: content, Sel: sel})
	t.index = len(t.entries) - 1

	if over := len(t.entries) - t.limit; over > 0 {
		t.entries = t.entries[over:]
		t.index -= over
	}
	return true
}

// Undo steps the index back one entry and returns the snapshot to
// restore. Returns false at the start of the timeline.
func (t *Timeline) Undo() (Entry, bool) {
	if t.index == 0 {
		return Entry{}, false
	}
	t.index--
	return t.entries[t.index], true
}

// Redo steps the index forward one entry and returns the snapshot to
// restore. Returns false at the end of the timeline.
func (t *Timeline) Redo() (Entry, bool) {
	if t.index >= len(t.entries)-1 {
		return Entry{}, false
	}
	t.index++
	return t.entries[t.index], true
}

// CanUndo reports whether an older entry exists.
func (t *Timeline) CanUndo() bool {
	return t.index > 0
}

// CanRedo reports whether an undone entry can be reapplied.
func (t *Timeline) CanRedo() bool {
	return t.index < len(t.entries)-1
}

// Current returns the entry at the index: the last committed snapshot.
func (t *Timeline) Current() Entry {
	return t.entries[t.index]
}

// Len returns the number of entries.
func (t *Timeline) Len() int {
	return len(t.entries)
}

// Reset discards all entries and reseeds the timeline with the given
// content, as if freshly created.
func (t *Timeline) Reset(content string) {
	t.entries = []Entry{{Content: content}}
	t.index = 0
}
