// Package services implements the server side of the sync protocol.
package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/entrysync/internal/common"
	"github.com/dmitrijs2005/entrysync/internal/dbx"
	"github.com/dmitrijs2005/entrysync/internal/logging"
	"github.com/dmitrijs2005/entrysync/internal/server/config"
	"github.com/dmitrijs2005/entrysync/internal/server/metrics"
	"github.com/dmitrijs2005/entrysync/internal/server/models"
	"github.com/dmitrijs2005/entrysync/internal/server/repositories/repomanager"
)

// Notifier is told about the new version after a push changed something.
type Notifier interface {
	Notify(userID string, cursor int64)
}

type SyncService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
	notifier    Notifier
	metrics     *metrics.Metrics
	logger      logging.Logger
	now         func() time.Time
}

func NewSyncService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config,
	notifier Notifier, m *metrics.Metrics, logger logging.Logger) *SyncService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &SyncService{
		db:          db,
		repomanager: rm,
		config:      cfg,
		notifier:    notifier,
		metrics:     m,
		logger:      logger.With("module", "sync_service"),
		now:         time.Now,
	}
}

// Push stores changes with last-writer-wins on updatedAt. Every change is
// acknowledged, whether it won or not:
//
//   - no stored copy or a strictly newer updatedAt: stored under a new version;
//   - the same updatedAt and the same content: a replay, nothing happens;
//   - the same updatedAt and different content: see tieGoesToIncoming;
//   - an older updatedAt: the stored copy is moved to a new version so that
//     the pushing client pulls it back.
func (s *SyncService) Push(ctx context.Context, userID string, changes []*models.Change) (*models.PushResult, error) {
	if userID == "" {
		return nil, common.ErrorUnauthorized
	}
	for _, c := range changes {
		if c == nil || c.Collection == "" || c.ID == "" {
			return nil, ErrInvalidChange
		}
	}

	result := &models.PushResult{Accepted: make([]models.RecordRef, 0, len(changes))}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		userRepo := s.repomanager.Users(tx)
		recordRepo := s.repomanager.Records(tx)

		version, err := userRepo.Lock(ctx, userID)
		if err != nil {
			return err
		}

		for _, c := range changes {
			existing, err := recordRepo.GetForUpdate(ctx, userID, c.Collection, c.ID)
			if err != nil && !errors.Is(err, common.ErrorNotFound) {
				return err
			}

			switch {
			case existing != nil && c.UpdatedAt == existing.UpdatedAt && sameContent(existing, c):
				// replay of a change that was stored before

			case existing == nil || c.UpdatedAt > existing.UpdatedAt ||
				(c.UpdatedAt == existing.UpdatedAt && tieGoesToIncoming(existing, c)):
				if version, err = userRepo.IncrementCurrentVersion(ctx, userID); err != nil {
					return err
				}
				rec := &models.Record{
					UserID:         userID,
					Collection:     c.Collection,
					ID:             c.ID,
					Data:           c.Data,
					UpdatedAt:      c.UpdatedAt,
					Deleted:        c.Deleted,
					Version:        version,
					CreatedVersion: version,
				}
				if c.Deleted {
					rec.Data = nil
				}
				if existing != nil {
					rec.CreatedVersion = existing.CreatedVersion
				}
				if err := recordRepo.Upsert(ctx, rec); err != nil {
					return err
				}
				result.Applied++

			default:
				if version, err = userRepo.IncrementCurrentVersion(ctx, userID); err != nil {
					return err
				}
				if err := recordRepo.Touch(ctx, userID, c.Collection, c.ID, version); err != nil {
					return err
				}
				result.Touched++
			}

			result.Accepted = append(result.Accepted, models.RecordRef{Collection: c.Collection, ID: c.ID})
		}

		result.Version = version
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("push: %w", err)
	}

	result.ServerTimestamp = s.now().UnixMilli()
	s.metrics.ObservePush(len(changes), result.Applied, result.Touched)

	if result.Applied+result.Touched > 0 && s.notifier != nil {
		s.notifier.Notify(userID, result.Version)
	}
	s.logger.Debug(ctx, "push processed", "user", userID,
		"received", len(changes), "applied", result.Applied, "stale", result.Touched, "version", result.Version)

	return result, nil
}

func sameContent(existing *models.Record, c *models.Change) bool {
	if existing.Deleted != c.Deleted {
		return false
	}
	return c.Deleted || bytes.Equal(existing.Data, c.Data)
}

// tieGoesToIncoming picks the winner of two different writes carrying the
// same updatedAt. The choice does not depend on arrival order: a live record
// beats a tombstone, and between two live records the greater data wins.
// The loser is moved to a new version like any stale write, so every client
// pulls the winner.
func tieGoesToIncoming(existing *models.Record, c *models.Change) bool {
	if existing.Deleted != c.Deleted {
		return !c.Deleted
	}
	return bytes.Compare(c.Data, existing.Data) > 0
}

// Pull returns the user's changes after cursor and the version to pull
// from next time. An incremental pull from a client whose schema is older
// than the configured minimum fails with common.ErrSchemaMismatch; a pull
// from cursor 0 is always served. A cursor beyond the current version,
// which happens after the server data was reset, is served from 0.
func (s *SyncService) Pull(ctx context.Context, userID string, cursor int64, schemaVersion int) (*models.PullResult, error) {
	if userID == "" {
		return nil, common.ErrorUnauthorized
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor > 0 && schemaVersion < s.config.MinSchemaVersion {
		s.metrics.ObservePull("rejected", 0)
		return nil, common.ErrSchemaMismatch
	}

	var (
		recs    []*models.Record
		current int64
	)
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := dbx.WithTx(ctx, s.db, opts, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if current, err = s.repomanager.Users(tx).CurrentVersion(ctx, userID); err != nil {
			return err
		}
		if cursor > current {
			s.logger.Warn(ctx, "cursor ahead of server, serving full state", "user", userID,
				"cursor", cursor, "current", current)
			cursor = 0
		}
		recs, err = s.repomanager.Records(tx).SelectUpdated(ctx, userID, cursor)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("pull: %w", err)
	}

	kind := "incremental"
	if cursor == 0 {
		kind = "full"
	}
	s.metrics.ObservePull(kind, len(recs))

	return &models.PullResult{
		Changes:   groupChanges(recs, cursor),
		Watermark: current,
	}, nil
}

// groupChanges splits records per collection: tombstones are deletions,
// records that first appeared after cursor are creations, the rest updates.
func groupChanges(recs []*models.Record, cursor int64) map[string]*models.CollectionChanges {
	out := make(map[string]*models.CollectionChanges)
	for _, r := range recs {
		cc := out[r.Collection]
		if cc == nil {
			cc = &models.CollectionChanges{}
			out[r.Collection] = cc
		}
		switch {
		case r.Deleted:
			cc.Deleted = append(cc.Deleted, r)
		case r.CreatedVersion > cursor:
			cc.Created = append(cc.Created, r)
		default:
			cc.Updated = append(cc.Updated, r)
		}
	}
	return out
}
