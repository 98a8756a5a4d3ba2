package connections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
	"github.com/dmitrijs2005/rdpmanager/internal/common"
	"github.com/dmitrijs2005/rdpmanager/internal/dbx"
)

const columns = `id, name, hostname, port, username, encrypted_password, category_id,
	screen_mode, desktop_width, desktop_height, color_depth,
	redirect_clipboard, redirect_printers, redirect_drives,
	notes, last_connected, created_at`

const orderByName = ` ORDER BY name COLLATE NOCASE, id`

// SQLiteRepository implements Repository over a DBTX (*sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, c *models.Connection) (int64, error) {
	query := `INSERT INTO connections (name, hostname, port, username, encrypted_password, category_id,
			screen_mode, desktop_width, desktop_height, color_depth,
			redirect_clipboard, redirect_printers, redirect_drives,
			notes, last_connected, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Hostname, c.Port, c.Username, c.EncryptedPassword, nullableID(c.CategoryID),
		int(c.ScreenMode), c.DesktopWidth, c.DesktopHeight, int(c.ColorDepth),
		c.RedirectClipboard, c.RedirectPrinters, c.RedirectDrives,
		c.Notes, nullableTime(c.LastConnected), formatTime(c.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("failed to insert connection: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get connection id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, c *models.Connection) error {
	query := `UPDATE connections SET name = ?, hostname = ?, port = ?, username = ?,
			encrypted_password = ?, category_id = ?, screen_mode = ?,
			desktop_width = ?, desktop_height = ?, color_depth = ?,
			redirect_clipboard = ?, redirect_printers = ?, redirect_drives = ?, notes = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Hostname, c.Port, c.Username,
		c.EncryptedPassword, nullableID(c.CategoryID), int(c.ScreenMode),
		c.DesktopWidth, c.DesktopHeight, int(c.ColorDepth),
		c.RedirectClipboard, c.RedirectPrinters, c.RedirectDrives, c.Notes,
		c.ID)
	if err != nil {
		return fmt.Errorf("failed to update connection: %w", err)
	}
	if err := dbx.ExpectOne(res); err != nil {
		return fmt.Errorf("connection %d: %w", c.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM connections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}
	if err := dbx.ExpectOne(res); err != nil {
		return fmt.Errorf("connection %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Connection, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM connections WHERE id = ?`, id)

	c, err := scanConnection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("connection %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Connection, error) {
	return r.query(ctx, `SELECT `+columns+` FROM connections`+orderByName)
}

func (r *SQLiteRepository) ListByCategory(ctx context.Context, categoryID int64) ([]models.Connection, error) {
	return r.query(ctx, `SELECT `+columns+` FROM connections WHERE category_id = ?`+orderByName, categoryID)
}

func (r *SQLiteRepository) ListUncategorized(ctx context.Context) ([]models.Connection, error) {
	return r.query(ctx, `SELECT `+columns+` FROM connections WHERE category_id IS NULL`+orderByName)
}

func (r *SQLiteRepository) Search(ctx context.Context, query string) ([]models.Connection, error) {
	pattern := "%" + escapeLike(dbx.Fold(query)) + "%"
	return r.query(ctx, fmt.Sprintf(`SELECT %[1]s FROM connections
		WHERE %[2]s(name) LIKE ?1 ESCAPE '\' OR %[2]s(hostname) LIKE ?1 ESCAPE '\'
			OR %[2]s(username) LIKE ?1 ESCAPE '\' OR %[2]s(notes) LIKE ?1 ESCAPE '\'`, columns, dbx.FoldFunc)+orderByName, pattern)
}

func (r *SQLiteRepository) TouchLastConnected(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE connections SET last_connected = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("failed to update last_connected: %w", err)
	}
	if err := dbx.ExpectOne(res); err != nil {
		return fmt.Errorf("connection %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Connection, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select connections: %w", err)
	}
	defer rows.Close()

	result := make([]models.Connection, 0)
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConnection(s scanner) (*models.Connection, error) {
	var (
		c             models.Connection
		categoryID    sql.NullInt64
		screenMode    int
		colorDepth    int
		lastConnected sql.NullString
		createdAt     string
	)
	err := s.Scan(&c.ID, &c.Name, &c.Hostname, &c.Port, &c.Username, &c.EncryptedPassword, &categoryID,
		&screenMode, &c.DesktopWidth, &c.DesktopHeight, &colorDepth,
		&c.RedirectClipboard, &c.RedirectPrinters, &c.RedirectDrives,
		&c.Notes, &lastConnected, &createdAt)
	if err != nil {
		return nil, err
	}

	c.ScreenMode = models.ScreenMode(screenMode)
	c.ColorDepth = models.ColorDepth(colorDepth)
	if categoryID.Valid {
		id := categoryID.Int64
		c.CategoryID = &id
	}
	if lastConnected.Valid && lastConnected.String != "" {
		t, err := models.ParseTimestamp(lastConnected.String)
		if err != nil {
			return nil, fmt.Errorf("bad last_connected: %w", err)
		}
		c.LastConnected = &t
	}
	if c.CreatedAt, err = models.ParseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("bad created_at: %w", err)
	}
	return &c, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
