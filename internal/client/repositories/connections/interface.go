package connections

import (
	"context"
	"time"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
)

// Repository describes CRUD and query operations for connection profiles.
// Unknown ids yield common.ErrNotFound.
type Repository interface {
	// Create inserts c and returns the assigned id. ID is ignored.
	Create(ctx context.Context, c *models.Connection) (int64, error)

	// Update replaces every editable field of the row c.ID. CreatedAt and
	// LastConnected are left untouched.
	Update(ctx context.Context, c *models.Connection) error

	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (*models.Connection, error)

	// List returns every connection ordered by name.
	List(ctx context.Context) ([]models.Connection, error)

	// ListByCategory returns the connections of one category ordered by name.
	ListByCategory(ctx context.Context, categoryID int64) ([]models.Connection, error)

	// ListUncategorized returns connections without a category.
	ListUncategorized(ctx context.Context) ([]models.Connection, error)

	// Search matches query case-insensitively as a substring of name,
	// hostname, username or notes.
	Search(ctx context.Context, query string) ([]models.Connection, error)

	// TouchLastConnected stamps the last successful launch time.
	TouchLastConnected(ctx context.Context, id int64, at time.Time) error
}
