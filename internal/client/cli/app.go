package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/rdpmanager/internal/client/config"
	"github.com/dmitrijs2005/rdpmanager/internal/client/launcher"
	"github.com/dmitrijs2005/rdpmanager/internal/client/services"
	"github.com/dmitrijs2005/rdpmanager/internal/client/storage"
	"github.com/dmitrijs2005/rdpmanager/internal/common"
	"github.com/dmitrijs2005/rdpmanager/internal/cryptox"
	"github.com/dmitrijs2005/rdpmanager/internal/logging"
	"github.com/dmitrijs2005/rdpmanager/internal/netx"
)

type App struct {
	config   *config.Config
	db       *storage.Database
	store    services.ConnectionStore
	keyring  services.KeyringService
	launcher *launcher.Launcher
	prober   netx.Prober
	logger   logging.Logger

	ec     cryptox.EncryptionContext
	reader *bufio.Reader
	out    io.Writer
	styles styles
}

// NewApp opens the database and builds every service the REPL uses.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	l := launcher.New(
		launcher.Options{DescriptorDir: c.DescriptorDir, CleanupDelay: c.CleanupDelay},
		launcher.NewCmdkeyStager(c.CredentialCommand),
		launcher.NewExecSpawner(c.ClientCommand),
		launcher.TimerScheduler{},
		logger,
	)

	return &App{
		config:   c,
		db:       db,
		store:    services.NewConnectionStore(db, logger),
		keyring:  services.NewKeyringService(db.Settings, logger),
		launcher: l,
		prober:   netx.NewProber(c.DefaultPort, c.ProbeTimeout, c.ProbeDeadline),
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		styles:   newStyles(lipgloss.NewRenderer(os.Stdout)),
	}, nil
}

// Unlock builds the session EncryptionContext, asking for the master
// password first when configured to.
func (a *App) Unlock(ctx context.Context) error {
	var passphrase string
	if a.config.AskMasterPassword {
		pw, err := GetPassword(a.out, "Master password: ")
		if err != nil {
			return fmt.Errorf("read master password: %w", err)
		}
		passphrase = string(pw)
		common.WipeByteArray(pw)
	}

	ec, err := a.keyring.Context(ctx, passphrase)
	if err != nil {
		return err
	}
	a.ec = ec
	return nil
}

// Run unlocks the keyring and serves the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	defer a.Close(ctx)

	if err := a.Unlock(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "RDP Manager (type 'help' for commands)")
	runREPL(ctx, a, a.reader)
	return nil
}

// Close runs pending launch cleanups and closes the database.
func (a *App) Close(ctx context.Context) {
	a.launcher.Flush(ctx)
	if err := a.db.Close(); err != nil {
		a.logger.Warn(ctx, "closing database", "error", err)
	}
}
