package launcher

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/dmitrijs2005/rdpmanager/internal/common"
)

// CredentialTarget is the generic-credential key the native client looks up
// for hostname.
func CredentialTarget(hostname string) string {
	return common.CredentialTargetPrefix + "/" + hostname
}

// CredentialStager writes and removes generic credentials in the OS store.
type CredentialStager interface {
	Stage(ctx context.Context, target, username, password string) error
	Remove(ctx context.Context, target string) error
}

type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// CmdkeyStager drives the Windows cmdkey utility.
type CmdkeyStager struct {
	command string
	run     commandRunner
}

func NewCmdkeyStager(command string) *CmdkeyStager {
	return &CmdkeyStager{command: command, run: runHidden}
}

func (s *CmdkeyStager) Stage(ctx context.Context, target, username, password string) error {
	_, err := s.run(ctx, s.command, "/generic:"+target, "/user:"+username, "/pass:"+password)
	if err != nil {
		// The argument list carries the password; report the target only.
		return fmt.Errorf("failed to stage credential %s: %w", target, err)
	}
	return nil
}

func (s *CmdkeyStager) Remove(ctx context.Context, target string) error {
	if _, err := s.run(ctx, s.command, "/delete:"+target); err != nil {
		return fmt.Errorf("failed to remove credential %s: %w", target, err)
	}
	return nil
}

// runHidden runs a console utility to completion without opening a window
// and folds its output into the error on failure.
func runHidden(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = hiddenProcAttr()

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(out.String())
		if msg != "" {
			return out.Bytes(), fmt.Errorf("%w: %s", err, msg)
		}
		return out.Bytes(), err
	}
	return out.Bytes(), nil
}
