//go:build windows

package templates

import (
	"errors"
	"io/fs"
	"syscall"
)

const (
	errorSharingViolation syscall.Errno = 32
	errorLockViolation    syscall.Errno = 33
)

// isLocked Word で開いたままのファイルは共有違反かアクセス拒否になる
func isLocked(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) && (errno == errorSharingViolation || errno == errorLockViolation) {
		return true
	}
	return errors.Is(err, fs.ErrPermission)
}
