//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package data

import (
	"errors"
	"os"
)

// errEINTR has no real syscall to compare against on platforms with no
// zero-copy primitive; it exists only so sendfile.go's errors.Is check
// compiles uniformly. platformSendfile is never actually called here
// because rawConn always reports ok=false, routing Sendfile through
// sendfileFallback instead.
var errEINTR = errors.New("data: EINTR (unsupported platform)")

func platformSendfile(dstFD int, f *os.File, offset *int64, count int64) (int64, error) {
	return 0, errors.New("data: zero-copy sendfile not supported on this platform")
}
