package changeset

import "errors"

// ErrEmptyChangeset reports that nothing is dirty. It is a soft signal: the
// push is skipped, the pull still runs.
var ErrEmptyChangeset = errors.New("empty changeset")
