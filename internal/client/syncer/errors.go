package syncer

import "errors"

var (
	// ErrOffline is returned by RequestSync while connectivity is down. No
	// network call was made.
	ErrOffline = errors.New("offline")
	// ErrSignedOut is returned when no principal is signed in.
	ErrSignedOut = errors.New("signed out")
)
