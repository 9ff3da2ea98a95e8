package vfs

import (
	"os"

	"github.com/gaojiangqi/proftpd/vfs/driver"
)

// absPath resolves a possibly-relative path against cwd without touching
// the filesystem, the same shortcut cachedStat uses; full symlink/"../."
// resolution is ResolvePartial/ResolveFull's job, not every op's.
func (r *Router) absPath(path string) string {
	if path != "" && path[0] == '/' {
		return path
	}
	return Dircat(r.Getcwd(), path)
}

// Stat follows the final symlink (fs_lookup_file with a stat-class op).
func (r *Router) Stat(path string) (os.FileInfo, error) {
	drv := r.LookupFile(path, true)
	if drv.Stat == nil {
		return nil, ErrNotPermitted
	}
	abs := r.absPath(path)
	fi, err := r.cachedStat(abs, false, drv.Stat)
	return fi, wrapIO("stat", abs, err)
}

// Lstat does not follow a terminal symlink.
func (r *Router) Lstat(path string) (os.FileInfo, error) {
	drv := r.LookupFile(path, false)
	if drv.Lstat == nil {
		return nil, ErrNotPermitted
	}
	abs := r.absPath(path)
	fi, err := r.cachedStat(abs, true, drv.Lstat)
	return fi, wrapIO("lstat", abs, err)
}

// Rename requires both endpoints to route to the same driver; crossing
// drivers is ErrCrossDevice (EXDEV), matching the source's two-path
// cross-device check rather than attempting a copy+delete fallback.
func (r *Router) Rename(from, to string) error {
	fromDrv := r.LookupFile(from, false)
	toDrv := r.LookupFile(to, false)
	if fromDrv != toDrv {
		return ErrCrossDevice
	}
	if fromDrv.Rename == nil {
		return ErrNotPermitted
	}
	err := fromDrv.Rename(r.absPath(from), r.absPath(to))
	r.ClearCache()
	return wrapIO("rename", from, err)
}

func (r *Router) Unlink(path string) error {
	drv := r.LookupFile(path, false)
	if drv.Unlink == nil {
		return ErrNotPermitted
	}
	err := drv.Unlink(r.absPath(path))
	r.ClearCache()
	return wrapIO("unlink", path, err)
}

func (r *Router) Open(path string, flag int) (driver.FileHandle, *driver.Driver, error) {
	drv := r.LookupFile(path, true)
	if drv.Open == nil {
		return nil, nil, ErrNotPermitted
	}
	fh, err := drv.Open(r.absPath(path), flag)
	if err != nil {
		return nil, nil, wrapIO("open", path, err)
	}
	return fh, drv, nil
}

func (r *Router) Create(path string, mode os.FileMode) (driver.FileHandle, *driver.Driver, error) {
	drv := r.LookupFile(path, false)
	if drv.Create == nil {
		return nil, nil, ErrNotPermitted
	}
	fh, err := drv.Create(r.absPath(path), mode)
	r.ClearCache()
	if err != nil {
		return nil, nil, wrapIO("create", path, err)
	}
	return fh, drv, nil
}

func Close(drv *driver.Driver, fh driver.FileHandle) error {
	if drv.Close == nil {
		return ErrNotPermitted
	}
	return wrapIO("close", "", drv.Close(fh))
}

func Read(drv *driver.Driver, fh driver.FileHandle, p []byte) (int, error) {
	if drv.Read == nil {
		return 0, ErrNotPermitted
	}
	n, err := drv.Read(fh, p)
	return n, wrapIO("read", "", err)
}

func Write(drv *driver.Driver, fh driver.FileHandle, p []byte) (int, error) {
	if drv.Write == nil {
		return 0, ErrNotPermitted
	}
	n, err := drv.Write(fh, p)
	return n, wrapIO("write", "", err)
}

func Seek(drv *driver.Driver, fh driver.FileHandle, offset int64, whence int) (int64, error) {
	if drv.Seek == nil {
		return 0, ErrNotPermitted
	}
	n, err := drv.Seek(fh, offset, whence)
	return n, wrapIO("seek", "", err)
}

func (r *Router) Link(oldpath, newpath string) error {
	drv := r.LookupFile(newpath, false)
	if r.LookupFile(oldpath, false) != drv {
		return ErrCrossDevice
	}
	if drv.Link == nil {
		return ErrNotPermitted
	}
	err := drv.Link(r.absPath(oldpath), r.absPath(newpath))
	r.ClearCache()
	return wrapIO("link", newpath, err)
}

func (r *Router) Readlink(path string) (string, error) {
	drv := r.LookupFile(path, false)
	if drv.Readlink == nil {
		return "", ErrNotPermitted
	}
	target, err := drv.Readlink(r.absPath(path))
	return target, wrapIO("readlink", path, err)
}

func (r *Router) Symlink(oldpath, newpath string) error {
	drv := r.LookupFile(newpath, false)
	if drv.Symlink == nil {
		return ErrNotPermitted
	}
	err := drv.Symlink(oldpath, r.absPath(newpath))
	r.ClearCache()
	return wrapIO("symlink", newpath, err)
}

func Ftruncate(drv *driver.Driver, fh driver.FileHandle, size int64) error {
	if drv.Ftruncate == nil {
		return ErrNotPermitted
	}
	return wrapIO("ftruncate", "", drv.Ftruncate(fh, size))
}

func (r *Router) Truncate(path string, size int64) error {
	drv := r.LookupFile(path, false)
	if drv.Truncate == nil {
		return ErrNotPermitted
	}
	err := drv.Truncate(r.absPath(path), size)
	r.ClearCache()
	return wrapIO("truncate", path, err)
}

func (r *Router) Chmod(path string, mode os.FileMode) error {
	drv := r.LookupFile(path, false)
	if drv.Chmod == nil {
		return ErrNotPermitted
	}
	err := drv.Chmod(r.absPath(path), mode)
	r.ClearCache()
	return wrapIO("chmod", path, err)
}

func (r *Router) Chown(path string, uid, gid int) error {
	drv := r.LookupFile(path, false)
	if drv.Chown == nil {
		return ErrNotPermitted
	}
	err := drv.Chown(r.absPath(path), uid, gid)
	r.ClearCache()
	return wrapIO("chown", path, err)
}
