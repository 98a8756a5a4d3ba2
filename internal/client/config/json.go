package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/rdpmanager/internal/client/models"
	"github.com/dmitrijs2005/rdpmanager/internal/flagx"
	"github.com/dmitrijs2005/rdpmanager/internal/timex"
	"github.com/tidwall/jsonc"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// stay nil and leave the current value untouched.
type JsonConfig struct {
	DBPath            *string         `json:"db_path"`
	DescriptorDir     *string         `json:"descriptor_dir"`
	CleanupDelay      *timex.Duration `json:"cleanup_delay"`
	ProbeTimeout      *timex.Duration `json:"probe_timeout"`
	ProbeDeadline     *timex.Duration `json:"probe_deadline"`
	ClientCommand     *string         `json:"client_command"`
	CredentialCommand *string         `json:"credential_command"`
	DefaultPort       *int            `json:"default_port"`
	DefaultScreenMode *int            `json:"default_screen_mode"`
	AskMasterPassword *bool           `json:"ask_master_password"`
	LogLevel          *string         `json:"log_level"`
	LogFile           *string         `json:"log_file"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}
	return loadJsonFile(cfg, path)
}

func loadJsonFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	setIf(&cfg.DBPath, jc.DBPath)
	setIf(&cfg.DescriptorDir, jc.DescriptorDir)
	setIf(&cfg.ClientCommand, jc.ClientCommand)
	setIf(&cfg.CredentialCommand, jc.CredentialCommand)
	setIf(&cfg.DefaultPort, jc.DefaultPort)
	setIf(&cfg.AskMasterPassword, jc.AskMasterPassword)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFile, jc.LogFile)

	if jc.CleanupDelay != nil {
		cfg.CleanupDelay = jc.CleanupDelay.Duration
	}
	if jc.ProbeTimeout != nil {
		cfg.ProbeTimeout = jc.ProbeTimeout.Duration
	}
	if jc.ProbeDeadline != nil {
		cfg.ProbeDeadline = jc.ProbeDeadline.Duration
	}
	if jc.DefaultScreenMode != nil {
		cfg.DefaultScreenMode = models.ScreenMode(*jc.DefaultScreenMode)
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
