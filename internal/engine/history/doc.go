// Package history provides per-document undo/redo timelines built from
// (content, selection) snapshots.
//
// The package has two layers:
//
// # Timeline
//
// Timeline is the pure history state: an ordered, capped list of Entry
// snapshots plus an index pointing at the last committed entry.
// Committing truncates any undone future, appends, and evicts from the
// front once the cap is exceeded, rebasing the index. Undo and redo step
// the index and return the entry to restore. Timeline is not safe for
// concurrent use; it is meant to be owned by a single Manager or test.
//
// # Manager
//
// Manager wraps a Timeline with debounced commits so a burst of typing
// coalesces into one snapshot:
//
//	h := history.NewManager("initial content")
//	h.Record(liveContent, liveSel) // arms or re-arms the 700ms timer
//	...
//	entry, ok := h.Undo() // cancels any pending commit first
//
// Recording always cancels and replaces the previously armed timer, so
// at most one commit is ever pending per document. Undo, redo, and
// Close cancel the pending commit outright: a stale debounce firing
// after an undo would resurrect content the user just stepped away
// from. Flush commits the pending state synchronously instead, for
// save-style operations that need the timeline current.
//
// Manager is safe for concurrent use; the debounce timer fires on its
// own goroutine and takes the same lock as the public methods.
package history
