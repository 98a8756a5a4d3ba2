// Package services contains the application services of the RDP manager.
// This file defines the connection store: validated CRUD over categories and
// connections, duplication, and JSON export/import.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
	"github.com/dmitrijs2005/rdpmanager/internal/client/storage"
	"github.com/dmitrijs2005/rdpmanager/internal/common"
	"github.com/dmitrijs2005/rdpmanager/internal/logging"
)

// ConnectionStore is the only component that mutates persisted rows. Every
// method is a single statement or a single transaction.
type ConnectionStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	AddCategory(ctx context.Context, name string) (int64, error)
	RenameCategory(ctx context.Context, id int64, name string) error
	// DeleteCategory detaches the category's connections and removes it.
	DeleteCategory(ctx context.Context, id int64) error

	Add(ctx context.Context, c models.Connection) (int64, error)
	// Update replaces the editable fields of c.ID.
	Update(ctx context.Context, c models.Connection) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.Connection, error)
	List(ctx context.Context) ([]models.Connection, error)
	// ListByCategory lists one category, or uncategorized connections when
	// categoryID is nil.
	ListByCategory(ctx context.Context, categoryID *int64) ([]models.Connection, error)
	Search(ctx context.Context, query string) ([]models.Connection, error)
	Duplicate(ctx context.Context, id int64) (int64, error)
	MarkConnected(ctx context.Context, id int64) error

	Export(ctx context.Context) (*models.ExportDocument, error)
	Import(ctx context.Context, doc *models.ExportDocument) (*models.ImportResult, error)
}

type connectionStore struct {
	db     *storage.Database
	logger logging.Logger
	now    func() time.Time
}

func NewConnectionStore(db *storage.Database, logger logging.Logger) ConnectionStore {
	return &connectionStore{db: db, logger: logger, now: time.Now}
}

func (s *connectionStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.db.Categories.List(ctx)
}

func (s *connectionStore) AddCategory(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, common.NewValidationError("name", "required")
	}
	id, err := s.db.Categories.Create(ctx, name, 0)
	if err != nil {
		return 0, fmt.Errorf("add category: %w", err)
	}
	s.logger.Info(ctx, "category added", "category_id", id, "name", name)
	return id, nil
}

func (s *connectionStore) RenameCategory(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return common.NewValidationError("name", "required")
	}
	if err := s.db.Categories.Rename(ctx, id, name); err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	return nil
}

func (s *connectionStore) DeleteCategory(ctx context.Context, id int64) error {
	err := s.db.WithTx(ctx, func(ctx context.Context, r *storage.Repositories) error {
		return r.Categories.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.logger.Info(ctx, "category deleted", "category_id", id)
	return nil
}

func (s *connectionStore) Add(ctx context.Context, c models.Connection) (int64, error) {
	var id int64
	err := s.db.WithTx(ctx, func(ctx context.Context, r *storage.Repositories) error {
		var err error
		id, err = s.insert(ctx, r, &c)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("add connection: %w", err)
	}
	s.logger.Info(ctx, "connection added", "connection_id", id, "host", c.Hostname)
	return id, nil
}

func (s *connectionStore) Update(ctx context.Context, c models.Connection) error {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("update connection: %w", err)
	}
	err := s.db.WithTx(ctx, func(ctx context.Context, r *storage.Repositories) error {
		if err := checkCategory(ctx, r, c.CategoryID); err != nil {
			return err
		}
		return r.Connections.Update(ctx, &c)
	})
	if err != nil {
		return fmt.Errorf("update connection: %w", err)
	}
	return nil
}

func (s *connectionStore) Delete(ctx context.Context, id int64) error {
	if err := s.db.Connections.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	s.logger.Info(ctx, "connection deleted", "connection_id", id)
	return nil
}

func (s *connectionStore) Get(ctx context.Context, id int64) (*models.Connection, error) {
	return s.db.Connections.GetByID(ctx, id)
}

func (s *connectionStore) List(ctx context.Context) ([]models.Connection, error) {
	return s.db.Connections.List(ctx)
}

func (s *connectionStore) ListByCategory(ctx context.Context, categoryID *int64) ([]models.Connection, error) {
	if categoryID == nil {
		return s.db.Connections.ListUncategorized(ctx)
	}
	return s.db.Connections.ListByCategory(ctx, *categoryID)
}

func (s *connectionStore) Search(ctx context.Context, query string) ([]models.Connection, error) {
	return s.db.Connections.Search(ctx, strings.TrimSpace(query))
}

func (s *connectionStore) Duplicate(ctx context.Context, id int64) (int64, error) {
	var newID int64
	err := s.db.WithTx(ctx, func(ctx context.Context, r *storage.Repositories) error {
		src, err := r.Connections.GetByID(ctx, id)
		if err != nil {
			return err
		}
		dup := src.Duplicate()
		newID, err = s.insert(ctx, r, &dup)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("duplicate connection: %w", err)
	}
	return newID, nil
}

func (s *connectionStore) MarkConnected(ctx context.Context, id int64) error {
	return s.db.Connections.TouchLastConnected(ctx, id, s.now())
}

func (s *connectionStore) Export(ctx context.Context) (*models.ExportDocument, error) {
	doc := &models.ExportDocument{Version: models.ExportVersion, ExportedAt: s.now().UTC()}
	err := s.db.WithTx(ctx, func(ctx context.Context, r *storage.Repositories) error {
		var err error
		if doc.Categories, err = r.Categories.List(ctx); err != nil {
			return err
		}
		doc.Connections, err = r.Connections.List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return doc, nil
}

func (s *connectionStore) Import(ctx context.Context, doc *models.ExportDocument) (*models.ImportResult, error) {
	if doc == nil {
		return nil, common.NewValidationError("document", "empty")
	}
	if doc.Version > models.ExportVersion {
		return nil, common.NewValidationError("version", fmt.Sprintf("unsupported export version %d", doc.Version))
	}

	result := &models.ImportResult{}
	err := s.db.WithTx(ctx, func(ctx context.Context, r *storage.Repositories) error {
		remap := make(map[int64]int64, len(doc.Categories))
		for _, cat := range doc.Categories {
			name := strings.TrimSpace(cat.Name)
			if name == "" {
				return common.NewValidationError("categories.name", "required")
			}
			existing, err := r.Categories.GetByName(ctx, name)
			switch {
			case err == nil:
				remap[cat.ID] = existing.ID
				result.CategoriesReused++
			case isNotFound(err):
				newID, err := r.Categories.Create(ctx, name, cat.SortOrder)
				if err != nil {
					return err
				}
				remap[cat.ID] = newID
				result.CategoriesCreated++
			default:
				return err
			}
		}

		for i := range doc.Connections {
			c := doc.Connections[i]
			c.CategoryID = remapCategory(remap, c.CategoryID)
			c.LastConnected = nil
			if _, err := s.insert(ctx, r, &c); err != nil {
				return fmt.Errorf("connection #%d (%q): %w", i+1, c.Name, err)
			}
			result.ConnectionsAdded++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	s.logger.Info(ctx, "import finished",
		"categories_created", result.CategoriesCreated,
		"categories_reused", result.CategoriesReused,
		"connections_added", result.ConnectionsAdded)
	return result, nil
}

// insert validates c and stores it as a new row with a fresh creation time.
func (s *connectionStore) insert(ctx context.Context, r *storage.Repositories, c *models.Connection) (int64, error) {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if err := checkCategory(ctx, r, c.CategoryID); err != nil {
		return 0, err
	}
	c.ID = 0
	c.CreatedAt = s.now().UTC()
	return r.Connections.Create(ctx, c)
}

func checkCategory(ctx context.Context, r *storage.Repositories, id *int64) error {
	if id == nil {
		return nil
	}
	_, err := r.Categories.GetByID(ctx, *id)
	return err
}

func remapCategory(remap map[int64]int64, id *int64) *int64 {
	if id == nil {
		return nil
	}
	newID, ok := remap[*id]
	if !ok {
		return nil
	}
	return &newID
}
