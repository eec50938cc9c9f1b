// Package services holds the server-side operations behind the REST handlers.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/common"
	"github.com/dmitrijs2005/scpcatalog/internal/dbx"
	"github.com/dmitrijs2005/scpcatalog/internal/logging"
	"github.com/dmitrijs2005/scpcatalog/internal/models"
	"github.com/dmitrijs2005/scpcatalog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/scpcatalog/internal/server/storage"
	"github.com/google/uuid"
)

// EntryService implements catalog CRUD over the record store and re-signs
// stored image keys on every read.
type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	logger      logging.Logger
	signTTL     time.Duration
	now         func() time.Time
	newID       func() string
}

func NewEntryService(db *sql.DB, rm repomanager.RepositoryManager, store storage.ObjectStore, logger logging.Logger) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: rm,
		store:       store,
		logger:      logger,
		signTTL:     storage.MaxPresignExpiry,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

func (s *EntryService) List(ctx context.Context) ([]models.Entry, error) {
	items, err := s.repomanager.Entries(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.resolveImage(ctx, &items[i])
	}
	return items, nil
}

func (s *EntryService) Get(ctx context.Context, id string) (models.Entry, error) {
	e, err := s.repomanager.Entries(s.db).GetByID(ctx, id)
	if err != nil {
		return models.Entry{}, err
	}
	s.resolveImage(ctx, &e)
	return e, nil
}

func (s *EntryService) Create(ctx context.Context, in models.Entry) (models.Entry, error) {
	e := in.Trimmed()
	if missing := e.MissingFields(); len(missing) > 0 {
		return models.Entry{}, fmt.Errorf("%w: missing %s", common.ErrorValidation, strings.Join(missing, ", "))
	}

	e.ID = s.newID()
	e.CreatedAt = s.now().UnixMilli()

	if err := s.repomanager.Entries(s.db).Create(ctx, &e); err != nil {
		return models.Entry{}, err
	}

	s.logger.Info(ctx, "entry created", "id", e.ID, "item", e.Item)
	s.resolveImage(ctx, &e)
	return e, nil
}

// Update overwrites the editable fields of entry id and returns the stored
// row. When nothing was updated the row is looked up again, so a missing id
// surfaces as common.ErrorNotFound.
func (s *EntryService) Update(ctx context.Context, id string, in models.Entry) (models.Entry, error) {
	e := in.Trimmed()
	if missing := e.MissingFields(); len(missing) > 0 {
		return models.Entry{}, fmt.Errorf("%w: missing %s", common.ErrorValidation, strings.Join(missing, ", "))
	}
	e.ID = id

	var out models.Entry
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Entries(tx)

		updated, err := repo.Update(ctx, &e)
		if err != nil {
			return err
		}
		if !updated {
			s.logger.Warn(ctx, "update changed no rows, refetching", "id", id)
		}

		out, err = repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return models.Entry{}, err
	}

	s.logger.Info(ctx, "entry updated", "id", id)
	s.resolveImage(ctx, &out)
	return out, nil
}

func (s *EntryService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Entries(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "entry deleted", "id", id)
	return nil
}

// resolveImage swaps the stored URL for a fresh one when the object name is
// known. A signing failure keeps the stored URL.
func (s *EntryService) resolveImage(ctx context.Context, e *models.Entry) {
	if e.ImageKey == "" || s.store == nil {
		return
	}
	signed, err := s.store.SignURL(ctx, e.ImageKey, s.signTTL)
	if err != nil {
		s.logger.Warn(ctx, "image re-sign failed", "id", e.ID, "image_key", e.ImageKey, "error", err)
		return
	}
	e.Image = signed.URL
}
