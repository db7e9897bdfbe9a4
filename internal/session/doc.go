// Package session owns open documents. A Document couples live content
// and selection with the history manager that snapshots them; a
// Workspace tracks the open set and the active document.
//
// Every content change flows through the Document so that history
// recording and change notification cannot drift apart. History is
// per-document and never shared: undo in one document cannot touch
// another. Switching or closing a document cancels its pending history
// commit rather than flushing it, so a debounce in flight never
// commits behind the user's back.
package session
