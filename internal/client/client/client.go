package client

import (
	"context"

	"github.com/dmitrijs2005/entrysync/internal/client/models"
)

// Transport is the remote side of a sync round.
type Transport interface {
	// Push sends the batch. The server applies it idempotently per
	// (id, updatedAt), so a batch may be pushed again after a lost response.
	Push(ctx context.Context, batch *models.PushBatch, w models.Watermark) (*models.PushResult, error)
	// Pull returns remote changes after w.Cursor, obtained for w.SchemaVersion.
	Pull(ctx context.Context, w models.Watermark) (*models.PullResult, error)
	Ping(ctx context.Context) error
	Close() error
}
