package history

import "errors"

// ErrClosed is returned when recording into or flushing a closed manager.
var ErrClosed = errors.New("history manager is closed")
