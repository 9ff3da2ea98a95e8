//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package vfs

import (
	"os"
	"syscall"
)

// platformInode reads st_ino off the raw syscall.Stat_t the way the C
// source compares st_ino/st_dev pairs to detect an immediate symlink
// self-cycle during resolution.
func platformInode(fi os.FileInfo) (uint64, bool) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return uint64(st.Ino), true
}
