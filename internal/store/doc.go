// Package store persists document records. A record carries a
// document's identity, title, and full content; edit history is never
// serialized. FileStore keeps all records in one JSON file and replaces
// it atomically on save.
package store
