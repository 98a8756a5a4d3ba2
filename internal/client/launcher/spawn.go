package launcher

import (
	"fmt"
	"os/exec"
)

// Spawner starts the native client for a descriptor file without waiting
// for it to exit.
type Spawner interface {
	Spawn(descriptorPath string) error
}

// ExecSpawner runs command with the descriptor path as its only argument.
type ExecSpawner struct {
	command string
	start   func(cmd *exec.Cmd) error
}

func NewExecSpawner(command string) *ExecSpawner {
	return &ExecSpawner{command: command, start: startDetached}
}

func (s *ExecSpawner) Spawn(descriptorPath string) error {
	cmd := exec.Command(s.command, descriptorPath)
	cmd.SysProcAttr = hiddenProcAttr()
	if err := s.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", s.command, err)
	}
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child in the background so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}
