package models

import "time"

// SyncState is the orchestrator's state.
type SyncState int

const (
	StateIdle SyncState = iota
	StateSyncing
	StateOfflinePendingLocalChanges
	StateSyncFailed
)

func (s SyncState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSyncing:
		return "syncing"
	case StateOfflinePendingLocalChanges:
		return "offline-pending"
	case StateSyncFailed:
		return "sync-failed"
	default:
		return "unknown"
	}
}

// SyncStatus is the read-only view of sync progress offered to the UI and
// other observers.
type SyncStatus struct {
	State      SyncState
	LastSyncAt time.Time
	IsOnline   bool

	// HasUnsyncedEntries is raised when a sync was requested while offline
	// and the local store held dirty records.
	HasUnsyncedEntries bool

	// SyncAvailable is raised when connectivity returns while unsynced
	// entries exist; the user decides whether to sync.
	SyncAvailable bool

	// Principal is the signed-in principal, empty when signed out.
	Principal string
}
