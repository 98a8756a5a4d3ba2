package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
	"github.com/dmitrijs2005/rdpmanager/internal/common"
	"github.com/dmitrijs2005/rdpmanager/internal/filex"
)

// Config holds runtime settings for the RDP manager CLI.
type Config struct {
	DBPath        string
	DescriptorDir string

	// CleanupDelay is how long staged credentials and descriptor files
	// survive a launch.
	CleanupDelay  time.Duration
	ProbeTimeout  time.Duration
	ProbeDeadline time.Duration

	ClientCommand     string
	CredentialCommand string

	// Defaults for new connections.
	DefaultPort       int
	DefaultScreenMode models.ScreenMode

	AskMasterPassword bool

	LogLevel string
	LogFile  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	if p, err := filex.HomeSubPath(".rdpmanager", "connections.db"); err == nil {
		c.DBPath = p
	} else {
		c.DBPath = "connections.db"
	}
	c.DescriptorDir = filepath.Join(os.TempDir(), "rdpmanager")
	c.CleanupDelay = 30 * time.Second
	c.ProbeTimeout = time.Second
	c.ProbeDeadline = 5 * time.Second
	c.ClientCommand = "mstsc.exe"
	c.CredentialCommand = "cmdkey"
	c.DefaultPort = common.DefaultPort
	c.DefaultScreenMode = models.ScreenModeFullscreen
	c.AskMasterPassword = false
	c.LogLevel = "info"
	c.LogFile = ""
}

// Validate rejects settings no component can work with.
func (c *Config) Validate() error {
	switch {
	case c.DBPath == "":
		return fmt.Errorf("db path is empty: %w", common.ErrValidation)
	case c.CleanupDelay <= 0:
		return fmt.Errorf("cleanup delay must be positive: %w", common.ErrValidation)
	case c.ProbeTimeout <= 0 || c.ProbeDeadline <= 0:
		return fmt.Errorf("probe timeouts must be positive: %w", common.ErrValidation)
	case c.DefaultPort < 1 || c.DefaultPort > 65535:
		return fmt.Errorf("default port %d out of range: %w", c.DefaultPort, common.ErrValidation)
	case c.DefaultScreenMode != models.ScreenModeWindowed && c.DefaultScreenMode != models.ScreenModeFullscreen:
		return fmt.Errorf("default screen mode %d unknown: %w", c.DefaultScreenMode, common.ErrValidation)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the JSON file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
