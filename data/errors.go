package data

import (
	"errors"
	"syscall"
)

// abortReply is the 4xx/5xx reply an Abort() classifies errno into, per
// spec.md §4.8's table.
type abortReply struct {
	code int
	text string
}

// classifyAbort maps err to the reply table from spec.md §4.8. A nil err
// is the "errno == 0" row (clean/forced close mid-transfer). Unrecognized
// errors fall through to the generic 426.
func classifyAbort(err error) abortReply {
	if err == nil {
		return abortReply{426, "Data connection closed."}
	}

	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return abortReply{426, "Transfer aborted."}
	}

	switch errno {
	case syscall.ENXIO:
		return abortReply{451, "Unexpected streams hangup."}
	case syscall.EAGAIN, syscall.ENOMEM:
		return abortReply{451, "Insufficient memory or file locked."}
	case syscall.ETXTBSY, syscall.EBUSY:
		return abortReply{451, errno.Error()}
	case syscall.ENOSPC:
		return abortReply{452, errno.Error()}
	case syscall.EDQUOT, syscall.EFBIG:
		return abortReply{552, errno.Error()}
	case syscall.EIO, syscall.EPIPE, syscall.EPROTO, syscall.ETIME,
		syscall.ESPIPE, syscall.EFAULT, syscall.ECOMM, syscall.EDEADLK,
		syscall.EXFULL, syscall.ENOSR:
		return abortReply{451, errno.Error()}
	// ESRMNT has no portable syscall.Errno constant across the platforms
	// this module targets (present on Linux, absent on darwin/bsd), so it
	// is intentionally left out of this switch rather than gated behind a
	// platform build tag; it falls through to the default 426 case.
	case syscall.ECONNRESET, syscall.ECONNABORTED, syscall.ETIMEDOUT,
		syscall.ENETRESET, syscall.ENOLINK, syscall.ENOLCK, syscall.ESTALE,
		syscall.EREMCHG:
		return abortReply{450, "Link to file server lost."}
	default:
		return abortReply{426, errno.Error()}
	}
}
