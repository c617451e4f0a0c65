// Package watermark persists sync progress: the server cursor of the last
// applied pull and the local schema version it was obtained with.
package watermark

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/entrysync/internal/client/models"
	"github.com/dmitrijs2005/entrysync/internal/client/repositories/metadata"
)

const (
	keyPrefix        = "sync."
	keyCursor        = keyPrefix + "cursor"
	keySchemaVersion = keyPrefix + "schema_version"
	keyPrincipal     = keyPrefix + "principal"
)

// Store is the single-writer watermark record. Only the sync orchestrator
// writes it.
type Store struct {
	repo metadata.Repository
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// Read returns the last committed watermark, or the zero value if none was
// ever committed.
func (s *Store) Read(ctx context.Context) (models.Watermark, error) {
	cursor, err := s.readInt(ctx, keyCursor)
	if err != nil {
		return models.Watermark{}, err
	}
	schema, err := s.readInt(ctx, keySchemaVersion)
	if err != nil {
		return models.Watermark{}, err
	}
	return models.Watermark{Cursor: cursor, SchemaVersion: int(schema)}, nil
}

// Commit persists w. The stored cursor never moves backwards: a lower cursor
// keeps the stored one while the schema version is still taken from w.
// Callers commit only after the matching pull has been applied.
func (s *Store) Commit(ctx context.Context, w models.Watermark) error {
	cur, err := s.Read(ctx)
	if err != nil {
		return err
	}

	if w.Cursor < cur.Cursor {
		w.Cursor = cur.Cursor
	}
	if w == cur {
		return nil
	}

	return s.repo.SetMany(ctx, map[string][]byte{
		keyCursor:        []byte(strconv.FormatInt(w.Cursor, 10)),
		keySchemaVersion: []byte(strconv.Itoa(w.SchemaVersion)),
	})
}

// Reset forgets all sync progress, the bound principal included.
func (s *Store) Reset(ctx context.Context) error {
	return s.repo.DeletePrefix(ctx, keyPrefix)
}

// Principal returns the principal the stored progress belongs to.
func (s *Store) Principal(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, keyPrincipal)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// BindPrincipal associates the stored progress with principal. Progress of a
// different principal is discarded first. It reports whether a reset
// happened.
func (s *Store) BindPrincipal(ctx context.Context, principal string) (bool, error) {
	prev, err := s.Principal(ctx)
	if err != nil {
		return false, err
	}
	if prev == principal {
		return false, nil
	}

	reset := false
	if prev != "" {
		if err := s.Reset(ctx); err != nil {
			return false, err
		}
		reset = true
	}
	if err := s.repo.Set(ctx, keyPrincipal, []byte(principal)); err != nil {
		return false, err
	}
	return reset, nil
}

func (s *Store) readInt(ctx context.Context, key string) (int64, error) {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	n, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt metadata[%s]: %w", key, err)
	}
	return n, nil
}
