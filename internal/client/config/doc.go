// Package config loads runtime configuration for the RDP manager CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file, comments allowed, selected with -c or -config.
//  3. Environment variables prefixed RDPM_, optionally read from ./.env.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-db string              path to the connection database
//	-descriptor-dir string  directory for launch descriptor files
//	-cleanup-delay duration lifetime of staged credentials and descriptors
//	-client string          remote-desktop client executable
//	-log-level string       debug|info|warn|error
//	-log-file string        also write logs to this rotated file
//	-m                      ask for a master password at startup
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  // where connections live
//	  "db_path": "/home/me/.rdpmanager/connections.db",
//	  "cleanup_delay": "30s",
//	  "probe_timeout": "1s",
//	  "default_port": 3389,
//	  "ask_master_password": true
//	}
package config
