package store

import "time"

// Record is one persisted document.
type Record struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	SavedAt time.Time `json:"saved_at"`
}

// Store persists document records. Save replaces the full set; Load
// returns every stored record.
type Store interface {
	Save(records []Record) error
	Load() ([]Record, error)
}
