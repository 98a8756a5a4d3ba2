//go:build windows

package netx

import (
	"syscall"

	"golang.org/x/sys/windows"
)

func quietProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{HideWindow: true, CreationFlags: windows.CREATE_NO_WINDOW}
}
