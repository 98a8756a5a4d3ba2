//go:build !windows

package launcher

import "syscall"

func hiddenProcAttr() *syscall.SysProcAttr {
	return nil
}
