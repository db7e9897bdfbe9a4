package session

import "errors"

var (
	// ErrDocumentNotFound is returned when no open document has the
	// requested ID.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNoStore is returned by save operations when the workspace was
	// built without a store.
	ErrNoStore = errors.New("no store configured")
)
