package models

// Changeset is the created/updated/deleted triple of one collection.
type Changeset struct {
	Created []*Record
	Updated []*Record
	Deleted []string
	// DeletedAt holds the tombstone updatedAt of each Deleted id, when known.
	DeletedAt map[string]int64
}

// Len counts all entries of the changeset.
func (c *Changeset) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Created) + len(c.Updated) + len(c.Deleted)
}

// PushBatch is what one sync round pushes: a changeset per collection plus
// the updatedAt each record had when the batch was built. The latter guards
// dirty-flag clearing against edits racing the network round trip.
type PushBatch struct {
	Changesets map[string]*Changeset
	Versions   map[RecordKey]int64
}

// NewPushBatch returns an empty batch.
func NewPushBatch() *PushBatch {
	return &PushBatch{
		Changesets: make(map[string]*Changeset),
		Versions:   make(map[RecordKey]int64),
	}
}

// Len counts records across all collections.
func (b *PushBatch) Len() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, cs := range b.Changesets {
		n += cs.Len()
	}
	return n
}

// PushResult is the server's answer to a push.
type PushResult struct {
	Accepted        []RecordKey
	ServerTimestamp int64
}

// PullResult carries the remote changes since a watermark and the cursor
// to persist once they are applied.
type PullResult struct {
	Changes   map[string]*Changeset
	Watermark int64
}
