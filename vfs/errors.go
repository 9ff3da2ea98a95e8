package vfs

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors for the FSR error taxonomy (spec.md §7). Driver-level
// errors are wrapped with pkg/errors so the original cause (typically a
// *os.PathError / syscall.Errno) survives errors.Is/errors.As, the same
// layering backend/local and fs/fserrors use in the teacher repo.
var (
	// ErrInvalidArgument covers null/empty inputs and relative paths where
	// an absolute one is required.
	ErrInvalidArgument = errors.New("vfs: invalid argument")

	// ErrNotPermitted is returned when the routed driver's vtable slot for
	// the requested operation is nil.
	ErrNotPermitted = errors.New("vfs: operation not permitted")

	// ErrCrossDevice is returned by two-path operations whose paths route
	// to different drivers.
	ErrCrossDevice = errors.New("vfs: cross-device link")

	// ErrNotFound is returned by the resolver on a strict-mode miss.
	ErrNotFound = errors.New("vfs: no such file or directory")

	// ErrLoop is returned when symlink resolution exceeds the 32-hop bound
	// or detects an immediate inode cycle.
	ErrLoop = errors.New("vfs: too many levels of symbolic links")

	// ErrDuplicatePrefix is returned by Register when a driver already
	// owns the exact cleaned prefix being registered.
	ErrDuplicatePrefix = errors.New("vfs: duplicate fs prefix")
)

// wrapIO tags an underlying driver error as an IoError per spec.md §7,
// preserving the original cause for inspection.
func wrapIO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrapf(err, "vfs: %s %q", op, path)
}
