package history

import (
	"sync"
	"time"

	"github.com/mvickers/inkmark/internal/engine/selection"
)

// DefaultDebounce is the quiet period after the last recorded edit
// before the pending snapshot is committed.
const DefaultDebounce = 700 * time.Millisecond

// Manager owns one document's timeline and debounces commits into it.
// Every Record call replaces the pending snapshot and re-arms a single
// one-shot timer; the snapshot is committed when the timer outlives the
// typing burst. Undo, redo, and Close cancel the pending snapshot
// before acting so a stale commit can never fire afterwards.
//
// Manager is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	timeline *Timeline
	debounce time.Duration

	timer      *time.Timer
	gen        uint64
	pending    bool
	pendingEnt Entry
	closed     bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithDebounce sets the quiet period before a pending edit is committed.
func WithDebounce(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.debounce = d
		}
	}
}

// WithLimit sets the timeline's entry cap.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.timeline = NewTimeline(m.timeline.Current().Content, n)
		}
	}
}

// NewManager returns a manager whose timeline is seeded with the
// initial content.
func NewManager(initial string, opts ...Option) *Manager {
	m := &Manager{
		timeline: NewTimeline(initial, DefaultLimit),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Record stores content and selection as the pending snapshot and arms
// the debounce timer, cancelling and replacing any timer already
// pending. The timeline itself is not touched until the timer fires.
func (m *Manager) Record(content string, sel selection.Span) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.cancelLocked()
	m.pending = true
	m.pendingEnt = Entry{Content: content, Sel: sel}

	gen := m.gen
	m.timer = time.AfterFunc(m.debounce, func() { m.fire(gen) })
	return nil
}

// fire commits the pending snapshot when the debounce timer elapses.
// The generation guard discards firings that lost a race with a cancel
// or a newer Record while waiting on the lock.
func (m *Manager) fire(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || !m.pending || gen != m.gen {
		return
	}
	m.timeline.Commit(m.pendingEnt.Content, m.pendingEnt.Sel)
	m.pending = false
	m.timer = nil
}

// Flush synchronously commits the pending snapshot, if any. Used before
// operations that need the timeline current, such as saving.
func (m *Manager) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.pending {
		m.cancelLocked()
		m.timeline.Commit(m.pendingEnt.Content, m.pendingEnt.Sel)
	}
	return nil
}

// CancelPending drops the pending snapshot without committing it.
func (m *Manager) CancelPending() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
}

// cancelLocked stops the armed timer and invalidates in-flight firings.
// Callers must hold mu.
func (m *Manager) cancelLocked() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.pending = false
}

// Undo cancels any pending commit, steps the timeline back, and returns
// the snapshot to restore. Returns false when there is nothing to undo.
func (m *Manager) Undo() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Entry{}, false
	}
	m.cancelLocked()
	return m.timeline.Undo()
}

// Redo cancels any pending commit, steps the timeline forward, and
// returns the snapshot to restore. Returns false when there is nothing
// to redo.
func (m *Manager) Redo() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Entry{}, false
	}
	m.cancelLocked()
	return m.timeline.Redo()
}

// CanUndo reports whether an older snapshot exists.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeline.CanUndo()
}

// CanRedo reports whether an undone snapshot can be reapplied.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeline.CanRedo()
}

// Current returns the last committed snapshot.
func (m *Manager) Current() Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeline.Current()
}

// Len returns the number of committed snapshots.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeline.Len()
}

// Pending reports whether an uncommitted snapshot is waiting on the
// debounce timer.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// Reset cancels any pending commit and reseeds the timeline with the
// given content.
func (m *Manager) Reset(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelLocked()
	m.timeline.Reset(content)
}

// Close cancels any pending commit and marks the manager closed. A
// closed manager rejects further records; pending state is dropped, not
// flushed.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelLocked()
	m.closed = true
}
