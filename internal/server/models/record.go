// Package models defines server-side data models persisted in the database.
package models

// Record is the server copy of a replicated record.
type Record struct {
	UserID     string
	Collection string
	ID         string
	Data       []byte
	// UpdatedAt is the client-assigned modification time in milliseconds;
	// it decides which write wins.
	UpdatedAt int64
	Deleted   bool
	// Version is the per-user server version of the last change.
	Version int64
	// CreatedVersion is the version at which the record first appeared.
	CreatedVersion int64
}

// Change is one incoming record write from a push.
type Change struct {
	Collection string
	ID         string
	Data       []byte
	UpdatedAt  int64
	Deleted    bool
}

// RecordRef addresses a record of a user.
type RecordRef struct {
	Collection string
	ID         string
}

// CollectionChanges groups pulled records of one collection.
type CollectionChanges struct {
	Created []*Record
	Updated []*Record
	Deleted []*Record
}

// PushResult reports what a push did.
type PushResult struct {
	Accepted        []RecordRef
	Applied         int
	Touched         int
	ServerTimestamp int64
	Version         int64
}

// PullResult holds changes after a cursor and the cursor to use next.
type PullResult struct {
	Changes   map[string]*CollectionChanges
	Watermark int64
}
