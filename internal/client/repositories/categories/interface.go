package categories

import (
	"context"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
)

// Repository stores connection categories.
type Repository interface {
	// Create inserts a category and returns its id. A name collision yields
	// common.ErrDuplicateName.
	Create(ctx context.Context, name string, sortOrder int) (int64, error)

	// Rename changes the name in place. Unknown ids yield common.ErrNotFound,
	// collisions common.ErrDuplicateName.
	Rename(ctx context.Context, id int64, name string) error

	// Delete removes the category. Owned connections are detached by the
	// schema (ON DELETE SET NULL), not deleted.
	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (*models.Category, error)

	// GetByName returns common.ErrNotFound when no category has that name.
	GetByName(ctx context.Context, name string) (*models.Category, error)

	// List returns all categories ordered by sort_order, then name.
	List(ctx context.Context) ([]models.Category, error)
}
