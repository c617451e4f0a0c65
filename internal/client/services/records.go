// Package services contains the client's application services: local record
// editing and the signed-in session.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/entrysync/internal/client/models"
	"github.com/dmitrijs2005/entrysync/internal/client/repositories/records"
	"github.com/dmitrijs2005/entrysync/internal/common"
	"github.com/google/uuid"
)

// ErrEmptyCollection is returned when a record is created without a collection.
var ErrEmptyCollection = errors.New("collection must not be empty")

// RecordStore is what RecordService needs from the local store.
// *records.Store satisfies it.
type RecordStore interface {
	Repository() records.Repository
	Atomic(ctx context.Context, fn func(ctx context.Context, tx records.Repository) error) error
}

// RecordService edits records locally. Every mutation marks the record dirty
// and advances its updatedAt; nothing here talks to the network.
type RecordService interface {
	Create(ctx context.Context, collection string, data []byte) (*models.Record, error)
	Update(ctx context.Context, id string, data []byte) (*models.Record, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Record, error)
	List(ctx context.Context, collection string) ([]*models.Record, error)
}

type recordService struct {
	store RecordStore
	now   func() time.Time
}

func NewRecordService(store RecordStore) RecordService {
	return &recordService{store: store, now: time.Now}
}

func (s *recordService) Create(ctx context.Context, collection string, data []byte) (*models.Record, error) {
	if collection == "" {
		return nil, ErrEmptyCollection
	}

	r := &models.Record{
		ID:         uuid.NewString(),
		Collection: collection,
		Data:       data,
		UpdatedAt:  models.NextUpdatedAt(0, s.now()),
		Dirty:      true,
	}

	if err := s.store.Repository().Put(ctx, r); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return r, nil
}

func (s *recordService) Update(ctx context.Context, id string, data []byte) (*models.Record, error) {
	var updated *models.Record
	err := s.store.Atomic(ctx, func(ctx context.Context, tx records.Repository) error {
		r, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		r.Data = data
		r.UpdatedAt = models.NextUpdatedAt(r.UpdatedAt, s.now())
		r.Dirty = true
		updated = r
		return tx.Put(ctx, r)
	})
	if err != nil {
		return nil, fmt.Errorf("error updating record %s: %w", id, err)
	}
	return updated, nil
}

// Delete turns the record into a dirty tombstone. It disappears from the
// store once the server acknowledges the deletion.
func (s *recordService) Delete(ctx context.Context, id string) error {
	err := s.store.Atomic(ctx, func(ctx context.Context, tx records.Repository) error {
		r, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		r.Data = nil
		r.Deleted = true
		r.UpdatedAt = models.NextUpdatedAt(r.UpdatedAt, s.now())
		r.Dirty = true
		return tx.Put(ctx, r)
	})
	if err != nil {
		return fmt.Errorf("error deleting record %s: %w", id, err)
	}
	return nil
}

func (s *recordService) Get(ctx context.Context, id string) (*models.Record, error) {
	r, err := s.store.Repository().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving record %s: %w", id, err)
	}
	return r, nil
}

func (s *recordService) List(ctx context.Context, collection string) ([]*models.Record, error) {
	rows, err := s.store.Repository().List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	return rows, nil
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, common.ErrorNotFound)
}
