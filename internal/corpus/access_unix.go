//go:build unix

package corpus

import "golang.org/x/sys/unix"

func checkAccess(path string, write bool) error {
	mode := uint32(unix.R_OK)
	if write {
		mode |= unix.W_OK
	}
	return unix.Access(path, mode)
}
