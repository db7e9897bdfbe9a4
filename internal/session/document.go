package session

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/mvickers/inkmark/internal/engine/history"
	"github.com/mvickers/inkmark/internal/engine/mutate"
	"github.com/mvickers/inkmark/internal/engine/selection"
)

// Document is one open document: live content, current selection, and
// the history manager snapshotting them. The document is the sole
// mutator of its history.
type Document struct {
	// ID identifies the document across save and load.
	ID uuid.UUID

	// Title is the display name.
	Title string

	mu      sync.Mutex
	content string
	sel     selection.Span

	history  *history.Manager
	modified atomic.Bool
	onChange func(*Document)
}

// NewDocument creates a document whose history is seeded with the
// initial content.
func NewDocument(title, content string, opts ...history.Option) *Document {
	return &Document{
		ID:      uuid.New(),
		Title:   title,
		content: content,
		history: history.NewManager(content, opts...),
	}
}

// Content returns the live content.
func (d *Document) Content() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

// Selection returns the current selection bounds.
func (d *Document) Selection() selection.Span {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sel
}

// State snapshots content and selection for the engines.
func (d *Document) State() selection.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stateLocked()
}

func (d *Document) stateLocked() selection.State {
	return selection.Select(d.content, d.sel.Start, d.sel.End)
}

// SetSelection moves the selection without touching content or
// history. Bounds are clamped against the live content.
func (d *Document) SetSelection(sp selection.Span) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sel = sp.Clamp(len(d.content))
}

// ApplyResult installs a mutation result as the live state and records
// it with the history manager.
func (d *Document) ApplyResult(res mutate.Result) error {
	d.mu.Lock()
	d.content = res.Text
	d.sel = selection.Span{Start: res.Start, End: res.End}.Clamp(len(res.Text))
	content, sel := d.content, d.sel
	d.mu.Unlock()

	d.modified.Store(true)
	if err := d.history.Record(content, sel); err != nil {
		return err
	}
	d.notify()
	return nil
}

// InsertText replaces the current selection with text, placing the
// caret after it. This is the fallback path for input the dispatcher
// declined.
func (d *Document) InsertText(text string) error {
	d.mu.Lock()
	st := d.stateLocked()
	d.mu.Unlock()

	pos := st.Start + len(text)
	return d.ApplyResult(mutate.Result{
		Text:  st.Text[:st.Start] + text + st.Text[st.End:],
		Start: pos,
		End:   pos,
	})
}

// SetContent replaces the live content wholesale, keeping the
// selection clamped, and records the change.
func (d *Document) SetContent(content string) error {
	d.mu.Lock()
	d.content = content
	d.sel = d.sel.Clamp(len(content))
	sel := d.sel
	d.mu.Unlock()

	d.modified.Store(true)
	if err := d.history.Record(content, sel); err != nil {
		return err
	}
	d.notify()
	return nil
}

// Undo restores the previous history snapshot. Any pending debounced
// commit is cancelled first, never flushed. Returns false when there
// is nothing to undo.
func (d *Document) Undo() (selection.State, bool) {
	ent, ok := d.history.Undo()
	if !ok {
		return selection.State{}, false
	}
	return d.restore(ent), true
}

// Redo reapplies the next history snapshot. Returns false when there
// is nothing to redo.
func (d *Document) Redo() (selection.State, bool) {
	ent, ok := d.history.Redo()
	if !ok {
		return selection.State{}, false
	}
	return d.restore(ent), true
}

func (d *Document) restore(ent history.Entry) selection.State {
	d.mu.Lock()
	d.content = ent.Content
	d.sel = ent.Sel.Clamp(len(ent.Content))
	st := d.stateLocked()
	d.mu.Unlock()

	d.modified.Store(true)
	d.notify()
	return st
}

// CanUndo reports whether an older snapshot exists.
func (d *Document) CanUndo() bool {
	return d.history.CanUndo()
}

// CanRedo reports whether an undone snapshot can be reapplied.
func (d *Document) CanRedo() bool {
	return d.history.CanRedo()
}

// IsModified reports whether the document changed since the last save.
func (d *Document) IsModified() bool {
	return d.modified.Load()
}

// SetModified sets the modified flag.
func (d *Document) SetModified(modified bool) {
	d.modified.Store(modified)
}

// Pending reports whether a history commit is waiting on the debounce
// timer.
func (d *Document) Pending() bool {
	return d.history.Pending()
}

// Flush synchronously commits any pending history snapshot.
func (d *Document) Flush() error {
	return d.history.Flush()
}

// CancelPending drops any pending history snapshot without committing.
func (d *Document) CancelPending() {
	d.history.CancelPending()
}

// Close cancels any pending commit and closes the history manager.
func (d *Document) Close() {
	d.history.Close()
}

func (d *Document) notify() {
	if d.onChange != nil {
		d.onChange(d)
	}
}
