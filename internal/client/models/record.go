// Package models defines the client-side data model of the sync engine:
// records, changesets, watermarks and the observable sync status.
package models

import "time"

// Record is a uniquely identified, versioned entity that belongs to exactly
// one collection.
type Record struct {
	// ID is stable and globally unique within Collection.
	ID string

	// Collection groups records, e.g. "entries".
	Collection string

	// Data is the opaque payload (JSON for the journal client).
	Data []byte

	// UpdatedAt is the last modification time in Unix milliseconds.
	// It totally orders versions of the same record.
	UpdatedAt int64

	// Deleted marks a tombstone kept until the server acknowledges it.
	Deleted bool

	// Dirty is local-only: the record has changes the server has not accepted yet.
	Dirty bool

	// Synced is local-only: a server-acknowledged copy of the record exists.
	Synced bool
}

// Key returns the record's cross-collection address.
func (r *Record) Key() RecordKey {
	return RecordKey{Collection: r.Collection, ID: r.ID}
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	c := *r
	if r.Data != nil {
		c.Data = append([]byte(nil), r.Data...)
	}
	return &c
}

// RecordKey addresses a record across collections.
type RecordKey struct {
	Collection string
	ID         string
}

// NowMillis converts t to Unix milliseconds.
func NowMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// NextUpdatedAt returns the updatedAt for a mutation of a record whose
// previous value is prev: never behind the wall clock and strictly greater
// than prev.
func NextUpdatedAt(prev int64, now time.Time) int64 {
	ts := NowMillis(now)
	if ts <= prev {
		return prev + 1
	}
	return ts
}
