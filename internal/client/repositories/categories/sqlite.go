// Package categories persists connection categories in SQLite.
package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
	"github.com/dmitrijs2005/rdpmanager/internal/common"
	"github.com/dmitrijs2005/rdpmanager/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, name string, sortOrder int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO categories (name, sort_order) VALUES (?, ?)`, name, sortOrder)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return 0, fmt.Errorf("category %q: %w", name, common.ErrDuplicateName)
		}
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get category id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) Rename(ctx context.Context, id int64, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", name, common.ErrDuplicateName)
		}
		return fmt.Errorf("failed to rename category: %w", err)
	}
	if err := dbx.ExpectOne(res); err != nil {
		return fmt.Errorf("category %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	// Detach explicitly as well, so the result does not depend on the
	// foreign_keys pragma of the connection in use.
	if _, err := r.db.ExecContext(ctx, `UPDATE connections SET category_id = NULL WHERE category_id = ?`, id); err != nil {
		return fmt.Errorf("failed to detach connections: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if err := dbx.ExpectOne(res); err != nil {
		return fmt.Errorf("category %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, sort_order FROM categories WHERE id = ?`, id)
	return scanOne(row, fmt.Sprintf("category %d", id))
}

func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, sort_order FROM categories WHERE name = ?`, name)
	return scanOne(row, fmt.Sprintf("category %q", name))
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, sort_order FROM categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	result := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanOne(row *sql.Row, what string) (*models.Category, error) {
	c := &models.Category{}
	err := row.Scan(&c.ID, &c.Name, &c.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", what, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return c, nil
}
