package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
	"github.com/dmitrijs2005/rdpmanager/internal/common"
	"github.com/dmitrijs2005/rdpmanager/internal/netx"
)

// selectConnections applies the "-c <category>" and "-u" filters shared by
// list and status.
func (a *App) selectConnections(ctx context.Context, args []string) ([]models.Connection, error) {
	if len(args) == 0 {
		return a.store.List(ctx)
	}
	switch args[0] {
	case "-u":
		return a.store.ListByCategory(ctx, nil)
	case "-c":
		if len(args) < 2 {
			return nil, fmt.Errorf("usage: list -c <category>")
		}
		cat, err := a.findCategory(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return nil, err
		}
		return a.store.ListByCategory(ctx, &cat.ID)
	}
	return nil, fmt.Errorf("unknown option %q", args[0])
}

// findCategory resolves a category by id or by exact name.
func (a *App) findCategory(ctx context.Context, ref string) (*models.Category, error) {
	cats, err := a.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	id, idErr := strconv.ParseInt(ref, 10, 64)
	for i := range cats {
		if cats[i].Name == ref || (idErr == nil && cats[i].ID == id) {
			return &cats[i], nil
		}
	}
	return nil, fmt.Errorf("category %q: %w", ref, common.ErrNotFound)
}

func (a *App) categoryNames(ctx context.Context) (map[int64]string, error) {
	cats, err := a.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (a *App) List(ctx context.Context, args []string) error {
	list, err := a.selectConnections(ctx, args)
	if err != nil {
		return err
	}
	return a.printConnections(ctx, list, nil)
}

func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: search <text>")
	}
	list, err := a.store.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	return a.printConnections(ctx, list, nil)
}

// Status probes the selected connections concurrently and prints a
// coloured dot per row.
func (a *App) Status(ctx context.Context, args []string) error {
	list, err := a.selectConnections(ctx, args)
	if err != nil {
		return err
	}
	targets := make(map[int64]string, len(list))
	for _, c := range list {
		targets[c.ID] = c.Hostname
	}
	reachable := netx.ProbeAll(ctx, a.prober, targets)
	return a.printConnections(ctx, list, reachable)
}

// printConnections renders a table; status adds a leading reachability dot.
func (a *App) printConnections(ctx context.Context, list []models.Connection, status map[int64]bool) error {
	if len(list) == 0 {
		fmt.Fprintln(a.out, a.styles.muted.Render("No connections."))
		return nil
	}
	cats, err := a.categoryNames(ctx)
	if err != nil {
		return err
	}

	prefix := ""
	if status != nil {
		prefix = "  "
	}
	fmt.Fprintln(a.out, a.styles.header.Render(prefix+
		cell("ID", colID)+cell("NAME", colName)+cell("ADDRESS", colAddress)+
		cell("USER", colUser)+cell("CATEGORY", colCat)+"LAST CONNECTED"))

	for _, c := range list {
		row := ""
		if status != nil {
			row = a.styles.dot(status[c.ID]) + " "
		}
		cat := "-"
		if c.CategoryID != nil {
			cat = cats[*c.CategoryID]
		}
		row += cell(strconv.FormatInt(c.ID, 10), colID) +
			cell(c.Name, colName) +
			cell(c.Address(), colAddress) +
			cell(orDash(c.Username), colUser) +
			cell(cat, colCat) +
			formatLast(c.LastConnected)
		fmt.Fprintln(a.out, row)
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "show <id> [-p]")
	if err != nil {
		return err
	}
	c, err := a.store.Get(ctx, id)
	if err != nil {
		return err
	}
	cats, err := a.categoryNames(ctx)
	if err != nil {
		return err
	}

	password := "(none)"
	if c.HasSecret() {
		password = "(stored)"
		if len(args) > 1 && args[1] == "-p" {
			plain, err := a.keyring.Reveal(a.ec, c.EncryptedPassword)
			if err != nil {
				return err
			}
			password = plain
		}
	}
	cat := "-"
	if c.CategoryID != nil {
		cat = cats[*c.CategoryID]
	}

	fields := [][2]string{
		{"ID", strconv.FormatInt(c.ID, 10)},
		{"Name", c.Name},
		{"Address", c.Address()},
		{"Username", orDash(c.Username)},
		{"Password", password},
		{"Category", cat},
		{"Screen", fmt.Sprintf("%s %dx%d, %d-bit", c.ScreenMode, c.DesktopWidth, c.DesktopHeight, c.ColorDepth)},
		{"Clipboard", yesNo(c.RedirectClipboard)},
		{"Printers", yesNo(c.RedirectPrinters)},
		{"Drives", yesNo(c.RedirectDrives)},
		{"Notes", orDash(c.Notes)},
		{"Created", c.CreatedAt.Local().Format(time.DateTime)},
		{"Last connected", formatLast(c.LastConnected)},
	}
	for _, f := range fields {
		fmt.Fprintln(a.out, a.styles.header.Render(cell(f[0]+":", 16))+f[1])
	}
	return nil
}

func formatLast(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format(time.DateTime)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
