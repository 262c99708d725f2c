//go:build !windows

package filelock

import (
	"os"
	"syscall"
)

// lockFile takes an exclusive advisory flock, blocking until the
// current holder releases it.
func lockFile(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_EX)
}

func unlockFile(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}
