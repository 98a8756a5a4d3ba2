package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
	"github.com/dmitrijs2005/rdpmanager/internal/common"
)

func (a *App) Add(ctx context.Context, _ []string) error {
	c := models.NewConnection()
	c.Port = a.config.DefaultPort
	c.ScreenMode = a.config.DefaultScreenMode

	if err := a.fillConnection(ctx, &c, true); err != nil {
		return err
	}
	id, err := a.store.Add(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added connection %d.\n", id)
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args, "edit <id>")
	if err != nil {
		return err
	}
	c, err := a.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := a.fillConnection(ctx, c, false); err != nil {
		return err
	}
	if err := a.store.Update(ctx, *c); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated connection %d.\n", id)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete <id>")
	if err != nil {
		return err
	}
	c, err := a.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !Confirm(a.reader, fmt.Sprintf("Delete %q?", c.Name), a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.store.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted connection %d.\n", id)
	return nil
}

func (a *App) Duplicate(ctx context.Context, args []string) error {
	id, err := parseID(args, "dup <id>")
	if err != nil {
		return err
	}
	newID, err := a.store.Duplicate(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created connection %d.\n", newID)
	return nil
}

// fillConnection prompts for every editable field of c, offering the current
// values as defaults.
func (a *App) fillConnection(ctx context.Context, c *models.Connection, isNew bool) error {
	var err error
	r, w := a.reader, a.out

	if c.Name, err = GetTextDefault(r, "Name", c.Name, w); err != nil {
		return err
	}
	if c.Hostname, err = GetTextDefault(r, "Hostname", c.Hostname, w); err != nil {
		return err
	}
	if c.Port, err = GetIntDefault(r, "Port", c.Port, w); err != nil {
		return common.NewValidationError("port", err.Error())
	}
	if c.Username, err = GetTextDefault(r, "Username", c.Username, w); err != nil {
		return err
	}
	if err := a.promptPassword(c, isNew); err != nil {
		return err
	}
	if err := a.promptCategory(ctx, c); err != nil {
		return err
	}

	mode, err := GetTextDefault(r, "Screen mode (windowed/fullscreen)", c.ScreenMode.String(), w)
	if err != nil {
		return err
	}
	if c.ScreenMode, err = models.ParseScreenMode(mode); err != nil {
		return err
	}
	if c.DesktopWidth, err = GetIntDefault(r, "Desktop width", c.DesktopWidth, w); err != nil {
		return common.NewValidationError("desktop_width", err.Error())
	}
	if c.DesktopHeight, err = GetIntDefault(r, "Desktop height", c.DesktopHeight, w); err != nil {
		return common.NewValidationError("desktop_height", err.Error())
	}
	depth, err := GetTextDefault(r, "Color depth (15/16/24/32)", strconv.Itoa(int(c.ColorDepth)), w)
	if err != nil {
		return err
	}
	if c.ColorDepth, err = models.ParseColorDepth(depth); err != nil {
		return err
	}

	if c.RedirectClipboard, err = GetBoolDefault(r, "Redirect clipboard", c.RedirectClipboard, w); err != nil {
		return err
	}
	if c.RedirectPrinters, err = GetBoolDefault(r, "Redirect printers", c.RedirectPrinters, w); err != nil {
		return err
	}
	if c.RedirectDrives, err = GetBoolDefault(r, "Redirect drives", c.RedirectDrives, w); err != nil {
		return err
	}
	c.Notes, err = GetTextDefault(r, "Notes", c.Notes, w)
	return err
}

// promptPassword reads the password without echo and seals it. When
// editing, an empty answer keeps the stored password and "-" removes it.
func (a *App) promptPassword(c *models.Connection, isNew bool) error {
	prompt := "Password (empty for none): "
	if !isNew {
		prompt = "Password (empty keeps current, - clears): "
	}
	pw, err := GetPassword(a.out, prompt)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	switch {
	case len(pw) == 0 && !isNew:
		return nil
	case string(pw) == "-" && !isNew:
		c.EncryptedPassword = ""
		return nil
	}

	sealed, err := a.keyring.Seal(a.ec, string(pw))
	if err != nil {
		return err
	}
	c.EncryptedPassword = sealed
	return nil
}

// promptCategory asks for a category name; "-" detaches.
func (a *App) promptCategory(ctx context.Context, c *models.Connection) error {
	current := ""
	if c.CategoryID != nil {
		names, err := a.categoryNames(ctx)
		if err != nil {
			return err
		}
		current = names[*c.CategoryID]
	}
	ref, err := GetTextDefault(a.reader, "Category (- for none)", current, a.out)
	if err != nil {
		return err
	}
	if ref == "" || ref == "-" {
		c.CategoryID = nil
		return nil
	}
	cat, err := a.findCategory(ctx, ref)
	if err != nil {
		return err
	}
	c.CategoryID = &cat.ID
	return nil
}
