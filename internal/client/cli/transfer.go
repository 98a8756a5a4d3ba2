package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
	"github.com/dmitrijs2005/rdpmanager/internal/filex"
)

// Export writes every category and connection to a JSON file. Passwords
// stay encrypted under the current master password and salt.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: export <file>")
	}
	path := strings.Join(args, " ")

	doc, err := a.store.Export(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if err := filex.WritePrivateFile(path, append(data, '\n')); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d connections and %d categories to %s.\n",
		len(doc.Connections), len(doc.Categories), path)
	return nil
}

// Import merges a file written by Export. Connections are always added,
// categories are matched by name.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: import <file>")
	}
	path := strings.Join(args, " ")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var doc models.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	res, err := a.store.Import(ctx, &doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Imported %d connections (%d new categories, %d reused).\n",
		res.ConnectionsAdded, res.CategoriesCreated, res.CategoriesReused)
	return nil
}
