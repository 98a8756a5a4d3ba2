package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/rdpmanager/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags declared here are considered; flagx.FilterArgs drops the
// rest so other components can own their own flags.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args,
		[]string{"db", "descriptor-dir", "cleanup-delay", "client", "log-level", "log-file"},
		"m")

	fs := flag.NewFlagSet("rdpmanager", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the connection database")
	fs.StringVar(&cfg.DescriptorDir, "descriptor-dir", cfg.DescriptorDir, "directory for launch descriptor files")
	fs.DurationVar(&cfg.CleanupDelay, "cleanup-delay", cfg.CleanupDelay, "lifetime of staged credentials and descriptor files")
	fs.StringVar(&cfg.ClientCommand, "client", cfg.ClientCommand, "remote-desktop client executable")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this rotated file as well")
	fs.BoolVar(&cfg.AskMasterPassword, "m", cfg.AskMasterPassword, "ask for a master password at startup")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
