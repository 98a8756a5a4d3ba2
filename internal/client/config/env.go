package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by parseEnv.
const EnvPrefix = "RDPM_"

// parseEnv overlays cfg with RDPM_* variables. A .env file in the working
// directory is loaded first; variables already set in the process win.
func parseEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return v, ok && v != ""
	}

	strs := map[string]*string{
		"DB_PATH":            &cfg.DBPath,
		"DESCRIPTOR_DIR":     &cfg.DescriptorDir,
		"CLIENT_COMMAND":     &cfg.ClientCommand,
		"CREDENTIAL_COMMAND": &cfg.CredentialCommand,
		"LOG_LEVEL":          &cfg.LogLevel,
		"LOG_FILE":           &cfg.LogFile,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"CLEANUP_DELAY":  &cfg.CleanupDelay,
		"PROBE_TIMEOUT":  &cfg.ProbeTimeout,
		"PROBE_DEADLINE": &cfg.ProbeDeadline,
	}
	for name, dst := range durations {
		if v, ok := get(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = d
		}
	}

	if v, ok := get("DEFAULT_PORT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sDEFAULT_PORT: %w", EnvPrefix, err)
		}
		cfg.DefaultPort = n
	}
	if v, ok := get("DEFAULT_SCREEN_MODE"); ok {
		m, err := models.ParseScreenMode(v)
		if err != nil {
			return fmt.Errorf("%sDEFAULT_SCREEN_MODE: %w", EnvPrefix, err)
		}
		cfg.DefaultScreenMode = m
	}
	if v, ok := get("ASK_MASTER_PASSWORD"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sASK_MASTER_PASSWORD: %w", EnvPrefix, err)
		}
		cfg.AskMasterPassword = b
	}
	return nil
}
