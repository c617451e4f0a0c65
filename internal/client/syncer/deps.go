package syncer

import (
	"context"

	"github.com/dmitrijs2005/entrysync/internal/client/models"
	"github.com/dmitrijs2005/entrysync/internal/client/repositories/records"
)

// RecordStore is the local store as seen by the orchestrator.
// *records.Store satisfies it.
type RecordStore interface {
	Snapshot(ctx context.Context, fn func(ctx context.Context, tx records.Repository) error) error
	HasDirty(ctx context.Context) (bool, error)
	SchemaVersion(ctx context.Context) (int, error)
	Atomic(ctx context.Context, fn func(ctx context.Context, tx records.Repository) error) error
}

// WatermarkStore persists sync progress. *watermark.Store satisfies it.
type WatermarkStore interface {
	Read(ctx context.Context) (models.Watermark, error)
	Commit(ctx context.Context, w models.Watermark) error
	Reset(ctx context.Context) error
	BindPrincipal(ctx context.Context, principal string) (bool, error)
}
