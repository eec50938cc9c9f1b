package entries

import (
	"context"

	"github.com/dmitrijs2005/scpcatalog/internal/models"
)

// Repository persists catalog entries.
type Repository interface {
	// List returns every entry in creation order.
	List(ctx context.Context) ([]models.Entry, error)
	// GetByID returns common.ErrorNotFound when no row matches.
	GetByID(ctx context.Context, id string) (models.Entry, error)
	Create(ctx context.Context, entry *models.Entry) error
	// Update reports whether a row was changed.
	Update(ctx context.Context, entry *models.Entry) (bool, error)
	// Delete returns common.ErrorNotFound when no row matches.
	Delete(ctx context.Context, id string) error
}
