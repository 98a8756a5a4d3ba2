package cli

import (
	"context"
	"fmt"
	"strings"
)

const categoryUsage = "cat list | cat add <name> | cat rename <id|name> <new name> | cat delete <id|name>"

func (a *App) Category(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s", categoryUsage)
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list", "ls":
		return a.listCategories(ctx)

	case "add":
		if len(rest) == 0 {
			return fmt.Errorf("usage: cat add <name>")
		}
		id, err := a.store.AddCategory(ctx, strings.Join(rest, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added category %d.\n", id)
		return nil

	case "rename":
		if len(rest) < 2 {
			return fmt.Errorf("usage: cat rename <id|name> <new name>")
		}
		cat, err := a.findCategory(ctx, rest[0])
		if err != nil {
			return err
		}
		return a.store.RenameCategory(ctx, cat.ID, strings.Join(rest[1:], " "))

	case "delete", "rm":
		if len(rest) == 0 {
			return fmt.Errorf("usage: cat delete <id|name>")
		}
		cat, err := a.findCategory(ctx, strings.Join(rest, " "))
		if err != nil {
			return err
		}
		if !Confirm(a.reader, fmt.Sprintf("Delete category %q? Its connections become uncategorized.", cat.Name), a.out) {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
		return a.store.DeleteCategory(ctx, cat.ID)
	}
	return fmt.Errorf("usage: %s", categoryUsage)
}

func (a *App) listCategories(ctx context.Context) error {
	cats, err := a.store.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		fmt.Fprintln(a.out, a.styles.muted.Render("No categories."))
		return nil
	}
	fmt.Fprintln(a.out, a.styles.header.Render(cell("ID", colID)+"NAME"))
	for _, c := range cats {
		fmt.Fprintln(a.out, cell(fmt.Sprint(c.ID), colID)+c.Name)
	}
	return nil
}
