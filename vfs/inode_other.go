//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package vfs

import "os"

// platformInode has no inode concept to report on non-unix platforms; the
// resolver falls back to the hop counter alone for loop detection.
func platformInode(fi os.FileInfo) (uint64, bool) {
	return 0, false
}
