//go:build linux

package data

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// errEINTR is the sentinel Sendfile checks for to decide whether to
// resume the zero-copy primitive in place rather than surfacing an error.
var errEINTR = unix.EINTR

// platformSendfile wraps Linux's sendfile(2): offset is updated in place
// by the kernel on success, so the caller's *offset already reflects
// bytes sent; on EINTR the kernel may have made partial progress which
// unix.Sendfile reports via its own return value semantics, normalized
// here to "n bytes sent, offset advanced by n, resume with the same
// *offset value the kernel left behind."
func platformSendfile(dstFD int, f *os.File, offset *int64, count int64) (int64, error) {
	n, err := unix.Sendfile(dstFD, int(f.Fd()), offset, int(count))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return int64(n), errEINTR
		}
		return int64(n), err
	}
	return int64(n), nil
}
