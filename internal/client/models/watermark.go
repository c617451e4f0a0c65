package models

// Watermark bounds the next incremental pull. The zero value means
// "never synced".
type Watermark struct {
	// Cursor is the server-assigned monotonic position.
	Cursor int64

	// SchemaVersion is the local schema version the cursor was obtained with.
	SchemaVersion int
}

// IsZero reports whether the watermark has never been committed.
func (w Watermark) IsZero() bool {
	return w.Cursor == 0 && w.SchemaVersion == 0
}
