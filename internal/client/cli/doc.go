// Package cli provides the interactive RDP manager command-line client.
//
// It wires configuration, the local connection database, the keyring, the
// launcher and the liveness prober behind a small REPL. Typical flow: open
// the database, optionally ask for the master password, then execute user
// commands until exit, at which point pending credential cleanups run
// immediately.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
