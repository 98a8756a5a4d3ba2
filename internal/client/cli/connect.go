package cli

import (
	"context"
	"fmt"
)

// Connect launches the client and records the connection time. The time is
// only recorded when the client started.
func (a *App) Connect(ctx context.Context, args []string) error {
	id, err := parseID(args, "connect <id>")
	if err != nil {
		return err
	}
	c, err := a.store.Get(ctx, id)
	if err != nil {
		return err
	}

	h, err := a.launcher.Connect(ctx, c, a.ec)
	if err != nil {
		return err
	}
	if err := a.store.MarkConnected(ctx, id); err != nil {
		a.logger.Warn(ctx, "failed to record connection time", "connection_id", id, "error", err)
	}

	fmt.Fprintf(a.out, "Connecting to %s (%s)...\n", c.Name, c.Address())
	if h.CredentialTarget != "" {
		fmt.Fprintf(a.out, "Credentials staged until %s.\n", h.CleanupAt.Local().Format("15:04:05"))
	}
	return nil
}
