//go:build unix

package preflight

import "golang.org/x/sys/unix"

func checkAccess(path string, access Access) error {
	mode := uint32(unix.R_OK | unix.X_OK)
	if access == AccessWrite {
		mode |= unix.W_OK
	}
	return unix.Access(path, mode)
}
