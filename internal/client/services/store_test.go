package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
	"github.com/dmitrijs2005/rdpmanager/internal/client/storage"
	"github.com/dmitrijs2005/rdpmanager/internal/common"
	"github.com/dmitrijs2005/rdpmanager/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

var fixedNow = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func setupStore(t *testing.T) (*connectionStore, *storage.Database) {
	t.Helper()
	db, err := storage.Open(context.Background(), storage.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewConnectionStore(db, logging.Discard()).(*connectionStore)
	s.now = func() time.Time { return fixedNow }
	return s, db
}

func conn(name, host string) models.Connection {
	c := models.NewConnection()
	c.Name = name
	c.Hostname = host
	return c
}

func connNames(list []models.Connection) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.Name)
	}
	return out
}

// ---- categories ----

func TestAddCategory_DuplicateName(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	_, err := s.AddCategory(ctx, "Prod")
	require.NoError(t, err)

	_, err = s.AddCategory(ctx, "  Prod ")
	require.ErrorIs(t, err, common.ErrDuplicateName)

	_, err = s.AddCategory(ctx, "   ")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestRenameCategory(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	a, err := s.AddCategory(ctx, "A")
	require.NoError(t, err)
	_, err = s.AddCategory(ctx, "B")
	require.NoError(t, err)

	require.NoError(t, s.RenameCategory(ctx, a, "C"))
	require.ErrorIs(t, s.RenameCategory(ctx, a, "B"), common.ErrDuplicateName)
	require.ErrorIs(t, s.RenameCategory(ctx, 999, "D"), common.ErrNotFound)

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "B", cats[0].Name)
	assert.Equal(t, "C", cats[1].Name)
}

func TestDeleteCategory_DetachesConnections(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	cat, err := s.AddCategory(ctx, "Prod")
	require.NoError(t, err)

	c := conn("db", "db.local")
	c.CategoryID = &cat
	id, err := s.Add(ctx, c)
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(ctx, cat))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)

	unc, err := s.ListByCategory(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"db"}, connNames(unc))

	require.ErrorIs(t, s.DeleteCategory(ctx, cat), common.ErrNotFound)
}

// ---- connections ----

func TestAdd_ValidatesAndStamps(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	id, err := s.Add(ctx, conn("  Web  ", " web.local "))
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Web", got.Name)
	assert.Equal(t, "web.local", got.Hostname)
	assert.True(t, got.CreatedAt.Equal(fixedNow))
	assert.Nil(t, got.LastConnected)

	_, err = s.Add(ctx, conn("", "host"))
	require.ErrorIs(t, err, common.ErrValidation)

	bad := conn("x", "host")
	bad.Port = 70000
	_, err = s.Add(ctx, bad)
	require.ErrorIs(t, err, common.ErrValidation)

	missing := int64(42)
	orphan := conn("x", "host")
	orphan.CategoryID = &missing
	_, err = s.Add(ctx, orphan)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	id, err := s.Add(ctx, conn("Web", "web.local"))
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	got.Hostname = "web2.local"
	got.Port = 3390
	require.NoError(t, s.Update(ctx, *got))

	after, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "web2.local:3390", after.Address())
	assert.True(t, after.CreatedAt.Equal(fixedNow))

	got.ID = 999
	require.ErrorIs(t, s.Update(ctx, *got), common.ErrNotFound)

	got.ID = id
	got.Hostname = ""
	require.ErrorIs(t, s.Update(ctx, *got), common.ErrValidation)
}

func TestDelete(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	id, err := s.Add(ctx, conn("Web", "web.local"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	require.ErrorIs(t, err, common.ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, id), common.ErrNotFound)
}

func TestSearch_CaseInsensitiveAcrossFields(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	a := conn("Alpha", "10.0.0.1")
	a.Notes = "primary DATABASE"
	b := conn("beta", "db-02.corp")
	c := conn("Gamma", "10.0.0.3")
	c.Username = "dbadmin"
	d := conn("Delta", "10.0.0.4")
	for _, x := range []models.Connection{d, c, b, a} {
		_, err := s.Add(ctx, x)
		require.NoError(t, err)
	}

	got, err := s.Search(ctx, "DB")
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "Gamma"}, connNames(got))

	got, err = s.Search(ctx, "database")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha"}, connNames(got))

	got, err = s.Search(ctx, "nomatch")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListByCategory(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	cat, err := s.AddCategory(ctx, "Prod")
	require.NoError(t, err)

	in := conn("in", "a")
	in.CategoryID = &cat
	_, err = s.Add(ctx, in)
	require.NoError(t, err)
	_, err = s.Add(ctx, conn("out", "b"))
	require.NoError(t, err)

	got, err := s.ListByCategory(ctx, &cat)
	require.NoError(t, err)
	assert.Equal(t, []string{"in"}, connNames(got))

	got, err = s.ListByCategory(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"out"}, connNames(got))

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDuplicate(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	cat, err := s.AddCategory(ctx, "Prod")
	require.NoError(t, err)

	src := conn("Web", "web.local")
	src.CategoryID = &cat
	src.Username = "admin"
	src.EncryptedPassword = "sealed"
	src.RedirectDrives = true
	id, err := s.Add(ctx, src)
	require.NoError(t, err)
	require.NoError(t, s.MarkConnected(ctx, id))

	newID, err := s.Duplicate(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, id, newID)

	dup, err := s.Get(ctx, newID)
	require.NoError(t, err)
	assert.Equal(t, "Web (Copy)", dup.Name)
	assert.Equal(t, "web.local", dup.Hostname)
	assert.Equal(t, "admin", dup.Username)
	assert.Equal(t, "sealed", dup.EncryptedPassword)
	assert.True(t, dup.RedirectDrives)
	require.NotNil(t, dup.CategoryID)
	assert.Equal(t, cat, *dup.CategoryID)
	assert.Nil(t, dup.LastConnected)

	_, err = s.Duplicate(ctx, 999)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestMarkConnected(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	id, err := s.Add(ctx, conn("Web", "web.local"))
	require.NoError(t, err)
	require.NoError(t, s.MarkConnected(ctx, id))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.LastConnected)
	assert.True(t, got.LastConnected.Equal(fixedNow))

	require.ErrorIs(t, s.MarkConnected(ctx, 999), common.ErrNotFound)
}

// ---- export / import ----

func TestExportImport_IntoEmptyStore(t *testing.T) {
	src, _ := setupStore(t)
	ctx := context.Background()

	cat, err := src.AddCategory(ctx, "Prod")
	require.NoError(t, err)
	a := conn("a", "a.local")
	a.CategoryID = &cat
	a.EncryptedPassword = "sealed-a"
	_, err = src.Add(ctx, a)
	require.NoError(t, err)
	_, err = src.Add(ctx, conn("b", "b.local"))
	require.NoError(t, err)

	doc, err := src.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ExportVersion, doc.Version)
	require.Len(t, doc.Categories, 1)
	require.Len(t, doc.Connections, 2)

	dst, _ := setupStore(t)
	res, err := dst.Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, &models.ImportResult{CategoriesCreated: 1, ConnectionsAdded: 2}, res)

	got, err := dst.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, connNames(got))
	assert.Equal(t, "sealed-a", got[0].EncryptedPassword)
	require.NotNil(t, got[0].CategoryID)

	cats, err := dst.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, cats[0].ID, *got[0].CategoryID)
	assert.Nil(t, got[1].CategoryID)
}

func TestImport_ReusesCategoryAndRemaps(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	_, err := s.AddCategory(ctx, "Other")
	require.NoError(t, err)
	existing, err := s.AddCategory(ctx, "Prod")
	require.NoError(t, err)

	old := int64(77)
	unknown := int64(5)
	c1 := conn("x", "x.local")
	c1.ID = 500
	c1.CategoryID = &old
	c1.LastConnected = &fixedNow
	c2 := conn("y", "y.local")
	c2.CategoryID = &unknown

	doc := &models.ExportDocument{
		Version:     1,
		Categories:  []models.Category{{ID: old, Name: "Prod"}},
		Connections: []models.Connection{c1, c2},
	}
	res, err := s.Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, res.CategoriesReused)
	assert.Equal(t, 0, res.CategoriesCreated)
	assert.Equal(t, 2, res.ConnectionsAdded)

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotEqual(t, int64(500), got[0].ID)
	require.NotNil(t, got[0].CategoryID)
	assert.Equal(t, existing, *got[0].CategoryID)
	assert.Nil(t, got[0].LastConnected)
	assert.Nil(t, got[1].CategoryID)

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestImport_TwiceDuplicatesConnections(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	doc := &models.ExportDocument{Version: 1, Connections: []models.Connection{conn("a", "a.local")}}
	_, err := s.Import(ctx, doc)
	require.NoError(t, err)
	_, err = s.Import(ctx, doc)
	require.NoError(t, err)

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a"}, connNames(got))
}

func TestImport_IsAtomic(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	doc := &models.ExportDocument{
		Version:    1,
		Categories: []models.Category{{ID: 1, Name: "New"}},
		Connections: []models.Connection{
			conn("ok", "ok.local"),
			conn("broken", ""),
		},
	}
	_, err := s.Import(ctx, doc)
	require.ErrorIs(t, err, common.ErrValidation)

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestImport_RejectsUnknownVersionAndNil(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	_, err := s.Import(ctx, &models.ExportDocument{Version: 99})
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Import(ctx, nil)
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestConnectionFields_RejectLineBreaks(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	injected := conn("Web", "web.local")
	injected.Username = "bob\ndrivestoredirect:s:*\nredirectdrives:i:1"
	_, err := s.Add(ctx, injected)
	require.ErrorIs(t, err, common.ErrValidation)

	id, err := s.Add(ctx, conn("Web", "web.local"))
	require.NoError(t, err)
	edited, err := s.Get(ctx, id)
	require.NoError(t, err)
	edited.Hostname = "web.local\r\nusername:s:root"
	require.ErrorIs(t, s.Update(ctx, *edited), common.ErrValidation)

	doc := &models.ExportDocument{
		Version:     1,
		Connections: []models.Connection{conn("ok", "ok.local"), injected},
	}
	_, err = s.Import(ctx, doc)
	require.ErrorIs(t, err, common.ErrValidation)

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "web.local", got[0].Hostname)
	assert.Empty(t, got[0].Username)
}

// Rows dumped straight from the database: integer flags, zone-less
// timestamps, ids from another database.
const databaseDumpExport = `{
  "version": 1,
  "exported_at": "2024-05-01T10:11:12.123456",
  "categories": [
    {"id": 4, "name": "Servers", "sort_order": 0}
  ],
  "connections": [
    {
      "id": 11, "name": "File Server", "hostname": "fs.corp.local", "port": 3390,
      "username": "CORP\\admin", "encrypted_password": "", "category_id": 4,
      "screen_mode": 1, "desktop_width": 1600, "desktop_height": 900, "color_depth": 24,
      "redirect_clipboard": 1, "redirect_printers": 0, "redirect_drives": 1,
      "notes": "", "last_connected": "2024-04-30T09:00:00.000001",
      "created_at": "2024-04-01 08:00:00"
    },
    {
      "id": 12, "name": "Jump", "hostname": "jump.corp.local", "port": 3389,
      "username": "", "encrypted_password": "", "category_id": null,
      "screen_mode": 2, "desktop_width": 1920, "desktop_height": 1080, "color_depth": 32,
      "redirect_clipboard": 0, "redirect_printers": 0, "redirect_drives": 0,
      "notes": "bastion", "last_connected": null,
      "created_at": "2024-04-02 08:00:00"
    }
  ]
}`

func TestImport_DatabaseDumpFormat(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	var doc models.ExportDocument
	require.NoError(t, json.Unmarshal([]byte(databaseDumpExport), &doc))

	res, err := s.Import(ctx, &doc)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ConnectionsAdded)
	assert.Equal(t, 1, res.CategoriesCreated)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"File Server", "Jump"}, connNames(all))

	fs := all[0]
	assert.Equal(t, `CORP\admin`, fs.Username)
	assert.Equal(t, 3390, fs.Port)
	assert.Equal(t, models.ScreenModeWindowed, fs.ScreenMode)
	assert.True(t, fs.RedirectClipboard)
	assert.False(t, fs.RedirectPrinters)
	assert.True(t, fs.RedirectDrives)
	assert.Nil(t, fs.LastConnected, "last_connected is not carried over")
	assert.True(t, fs.CreatedAt.Equal(fixedNow))
	require.NotNil(t, fs.CategoryID)

	cats, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, cats[0].ID, *fs.CategoryID)

	jump := all[1]
	assert.False(t, jump.RedirectClipboard)
	assert.Nil(t, jump.CategoryID)
}
