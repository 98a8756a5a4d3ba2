//go:build !windows

package netx

import "syscall"

func quietProcAttr() *syscall.SysProcAttr {
	return nil
}
