package changeset

import "github.com/dmitrijs2005/entrysync/internal/client/models"

// Decision is the outcome of merging one remote record into local state.
type Decision int

const (
	DecisionNoop Decision = iota
	DecisionTakeRemote
	DecisionKeepLocal
	DecisionRemove
	DecisionDeferDelete
)

func (d Decision) String() string {
	switch d {
	case DecisionNoop:
		return "noop"
	case DecisionTakeRemote:
		return "take-remote"
	case DecisionKeepLocal:
		return "keep-local"
	case DecisionRemove:
		return "remove"
	case DecisionDeferDelete:
		return "defer-delete"
	default:
		return "unknown"
	}
}

// Resolve is the last-writer-wins rule. local is nil when the record does
// not exist locally; remote.Deleted marks a remote deletion.
//
// A clean local record always yields to the remote one. A dirty local record
// yields only to a strictly greater updatedAt: ties keep the local copy, and
// ids are never compared. Remote deletions of dirty records are deferred.
func Resolve(local, remote *models.Record) Decision {
	if remote.Deleted {
		switch {
		case local == nil:
			return DecisionNoop
		case local.Dirty:
			return DecisionDeferDelete
		default:
			return DecisionRemove
		}
	}

	if local == nil || !local.Dirty {
		return DecisionTakeRemote
	}
	if remote.UpdatedAt > local.UpdatedAt {
		return DecisionTakeRemote
	}
	return DecisionKeepLocal
}
