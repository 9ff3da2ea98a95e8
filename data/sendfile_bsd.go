//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package data

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// errEINTR is the sentinel Sendfile checks for to decide whether to
// resume the zero-copy primitive in place rather than surfacing an error.
var errEINTR = unix.EINTR

// platformSendfile wraps the BSD-family sendfile(2), whose offset
// semantics differ from Linux's: the offset argument is passed by value
// and never advanced. x/sys/unix's wrapper reports "bytes written this
// call" (including the partial count on EINTR), so *offset is advanced by
// that count here, leaving the caller's loop to resume exactly as it does
// on Linux.
func platformSendfile(dstFD int, f *os.File, offset *int64, count int64) (int64, error) {
	n, err := unix.Sendfile(dstFD, int(f.Fd()), offset, int(count))
	if n > 0 {
		*offset += int64(n)
	}
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return int64(n), errEINTR
		}
		return int64(n), err
	}
	return int64(n), nil
}
