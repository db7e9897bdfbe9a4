package session

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mvickers/inkmark/internal/engine/history"
	"github.com/mvickers/inkmark/internal/logging"
	"github.com/mvickers/inkmark/internal/store"
)

// Workspace tracks the open documents and the active one. Switching
// the active document synchronously cancels the outgoing document's
// pending history commit.
type Workspace struct {
	mu     sync.RWMutex
	docs   map[uuid.UUID]*Document
	order  []uuid.UUID
	active *Document

	st           store.Store
	debounce     time.Duration
	historyLimit int
	onChange     func(*Document)
	log          *logging.Logger
	counter      int
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithStore sets the persistence backend for SaveAll.
func WithStore(st store.Store) Option {
	return func(w *Workspace) {
		w.st = st
	}
}

// WithDebounce sets the history debounce for documents the workspace
// creates.
func WithDebounce(d time.Duration) Option {
	return func(w *Workspace) {
		w.debounce = d
	}
}

// WithHistoryLimit sets the history entry cap for documents the
// workspace creates.
func WithHistoryLimit(n int) Option {
	return func(w *Workspace) {
		w.historyLimit = n
	}
}

// WithChangeHandler registers a callback invoked synchronously after
// any document's content changes.
func WithChangeHandler(fn func(*Document)) Option {
	return func(w *Workspace) {
		w.onChange = fn
	}
}

// WithLogger sets the workspace logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.log = l.WithComponent("session")
		}
	}
}

// NewWorkspace creates an empty workspace.
func NewWorkspace(opts ...Option) *Workspace {
	w := &Workspace{
		docs: make(map[uuid.UUID]*Document),
		log:  logging.Discard,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) historyOptions() []history.Option {
	var opts []history.Option
	if w.debounce > 0 {
		opts = append(opts, history.WithDebounce(w.debounce))
	}
	if w.historyLimit > 0 {
		opts = append(opts, history.WithLimit(w.historyLimit))
	}
	return opts
}

// Create opens a new document with the given title and content and
// makes it active. An empty title gets an untitled name.
func (w *Workspace) Create(title, content string) *Document {
	w.mu.Lock()
	defer w.mu.Unlock()

	if title == "" {
		w.counter++
		title = "Untitled"
		if w.counter > 1 {
			title = "Untitled-" + strconv.Itoa(w.counter)
		}
	}

	doc := NewDocument(title, content, w.historyOptions()...)
	doc.onChange = w.onChange
	w.registerLocked(doc)

	w.log.Debug("created document %q (%s)", doc.Title, doc.ID)
	return doc
}

// Open rebuilds a document from a stored record and makes it active.
// History always starts fresh from the stored content; past history is
// never persisted. A record whose ID does not parse gets a new one.
func (w *Workspace) Open(rec store.Record) *Document {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, err := uuid.Parse(rec.ID)
	if err != nil {
		id = uuid.New()
	}

	doc := &Document{
		ID:       id,
		Title:    rec.Title,
		content:  rec.Content,
		history:  history.NewManager(rec.Content, w.historyOptions()...),
		onChange: w.onChange,
	}
	w.registerLocked(doc)

	w.log.Debug("opened document %q (%s)", doc.Title, doc.ID)
	return doc
}

// registerLocked adds the document, appends it to the open order, and
// makes it active. The outgoing active document's pending commit is
// cancelled. Callers must hold mu.
func (w *Workspace) registerLocked(doc *Document) {
	if w.active != nil {
		w.active.CancelPending()
	}
	w.docs[doc.ID] = doc
	w.order = append(w.order, doc.ID)
	w.active = doc
}

// Get returns an open document by ID.
func (w *Workspace) Get(id uuid.UUID) (*Document, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	doc, ok := w.docs[id]
	return doc, ok
}

// All returns the open documents in open order.
func (w *Workspace) All() []*Document {
	w.mu.RLock()
	defer w.mu.RUnlock()

	docs := make([]*Document, 0, len(w.order))
	for _, id := range w.order {
		if doc, ok := w.docs[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// Count returns the number of open documents.
func (w *Workspace) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.docs)
}

// Active returns the active document, or nil when none is open.
func (w *Workspace) Active() *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// SetActive switches the active document. The outgoing document's
// pending history commit is cancelled, never flushed, so a debounce in
// flight cannot commit once focus has moved on.
func (w *Workspace) SetActive(id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc, ok := w.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}
	if doc == w.active {
		return nil
	}
	if w.active != nil {
		w.active.CancelPending()
	}
	w.active = doc
	return nil
}

// Close closes a document, cancelling any pending history commit and
// dropping it from the workspace. If it was active, the most recently
// opened document becomes active.
func (w *Workspace) Close(id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc, ok := w.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}

	doc.Close()
	delete(w.docs, id)
	for i, other := range w.order {
		if other == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}

	if w.active == doc {
		w.active = nil
		if len(w.order) > 0 {
			w.active = w.docs[w.order[len(w.order)-1]]
		}
	}

	w.log.Debug("closed document %q (%s)", doc.Title, doc.ID)
	return nil
}

// HasDirty reports whether any open document has unsaved changes.
func (w *Workspace) HasDirty() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, doc := range w.docs {
		if doc.IsModified() {
			return true
		}
	}
	return false
}

// SaveAll flushes every document's pending history and writes all
// documents through the store, clearing their modified flags.
func (w *Workspace) SaveAll() error {
	if w.st == nil {
		return ErrNoStore
	}

	docs := w.All()
	records := make([]store.Record, 0, len(docs))
	now := time.Now().UTC()
	for _, doc := range docs {
		if err := doc.Flush(); err != nil {
			return fmt.Errorf("flush %q: %w", doc.Title, err)
		}
		records = append(records, store.Record{
			ID:      doc.ID.String(),
			Title:   doc.Title,
			Content: doc.Content(),
			SavedAt: now,
		})
	}

	if err := w.st.Save(records); err != nil {
		return fmt.Errorf("save workspace: %w", err)
	}

	for _, doc := range docs {
		doc.SetModified(false)
	}
	w.log.Info("saved %d documents", len(records))
	return nil
}
