// Package localfs provides the default on-disk driver.Driver, the router's
// "/" mount. It is grounded in the teacher's backend/local disk backend
// together with the afero.Fs-based ClientDriver convention shown in the
// fclairamb/ftpserverlib reference driver: afero.OsFs supplies the actual
// syscalls, this package just maps driver.Driver's vtable shape onto it.
package localfs

import (
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/gaojiangqi/proftpd/vfs/driver"
)

type dirHandle struct {
	f       afero.File
	entries []os.FileInfo
	idx     int
}

// New builds a driver.Driver backed by fs (afero.NewOsFs() for the real
// default mount, or afero.NewMemMapFs() for tests that want an in-memory
// tree without touching disk).
func New(name string, fs afero.Fs) *driver.Driver {
	d := &driver.Driver{Name: name}

	d.Stat = fs.Stat
	d.Lstat = func(path string) (os.FileInfo, error) {
		if lfs, ok := fs.(afero.Lstater); ok {
			fi, _, err := lfs.LstatIfPossible(path)
			return fi, err
		}
		return fs.Stat(path)
	}
	d.Fstat = func(fh driver.FileHandle) (os.FileInfo, error) {
		f, ok := fh.(afero.File)
		if !ok {
			return nil, os.ErrInvalid
		}
		return f.Stat()
	}

	d.Rename = fs.Rename
	d.Unlink = fs.Remove

	d.Open = func(path string, flag int) (driver.FileHandle, error) {
		return fs.OpenFile(path, flag, 0)
	}
	d.Create = func(path string, mode os.FileMode) (driver.FileHandle, error) {
		return fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, mode)
	}
	d.Close = func(fh driver.FileHandle) error {
		f, ok := fh.(afero.File)
		if !ok {
			return os.ErrInvalid
		}
		return f.Close()
	}
	d.Read = func(fh driver.FileHandle, p []byte) (int, error) {
		f, ok := fh.(afero.File)
		if !ok {
			return 0, os.ErrInvalid
		}
		return f.Read(p)
	}
	d.Write = func(fh driver.FileHandle, p []byte) (int, error) {
		f, ok := fh.(afero.File)
		if !ok {
			return 0, os.ErrInvalid
		}
		return f.Write(p)
	}
	d.Seek = func(fh driver.FileHandle, offset int64, whence int) (int64, error) {
		f, ok := fh.(afero.File)
		if !ok {
			return 0, os.ErrInvalid
		}
		return f.Seek(offset, whence)
	}

	d.Link = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "link", Old: oldpath, New: newpath, Err: os.ErrPermission}
	}
	d.Readlink = func(path string) (string, error) {
		if lr, ok := fs.(afero.LinkReader); ok {
			return lr.ReadlinkIfPossible(path)
		}
		return "", os.ErrInvalid
	}
	d.Symlink = func(oldpath, newpath string) error {
		if sy, ok := fs.(afero.Linker); ok {
			return sy.SymlinkIfPossible(oldpath, newpath)
		}
		return os.ErrInvalid
	}

	d.Ftruncate = func(fh driver.FileHandle, size int64) error {
		f, ok := fh.(afero.File)
		if !ok {
			return os.ErrInvalid
		}
		return f.Truncate(size)
	}
	// afero.Fs has no Truncate-by-path; open, truncate, close.
	d.Truncate = func(path string, size int64) error {
		f, err := fs.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return err
		}
		defer f.Close()
		return f.Truncate(size)
	}
	d.Chmod = fs.Chmod
	d.Chown = func(path string, uid, gid int) error {
		return fs.Chown(path, uid, gid)
	}

	d.Chdir = func(path string) error { return nil } // cwd tracking lives in the router, not the driver
	d.Chroot = nil                                   // plain afero.Fs has no chroot(2) equivalent; only a real OS driver would set this

	d.Opendir = func(path string) (driver.DirHandle, error) {
		f, err := fs.Open(path)
		if err != nil {
			return nil, err
		}
		return &dirHandle{f: f}, nil
	}
	d.Closedir = func(dh driver.DirHandle) error {
		h, ok := dh.(*dirHandle)
		if !ok {
			return os.ErrInvalid
		}
		return h.f.Close()
	}
	d.Readdir = func(dh driver.DirHandle) (driver.DirEntry, error) {
		h, ok := dh.(*dirHandle)
		if !ok {
			return driver.DirEntry{}, os.ErrInvalid
		}
		if h.entries == nil {
			entries, err := h.f.Readdir(-1)
			if err != nil {
				return driver.DirEntry{}, err
			}
			h.entries = entries
		}
		if h.idx >= len(h.entries) {
			return driver.DirEntry{}, io.EOF
		}
		fi := h.entries[h.idx]
		h.idx++
		return driver.DirEntry{
			Name:    fi.Name(),
			IsDir:   fi.IsDir(),
			Size:    fi.Size(),
			Mode:    fi.Mode(),
			ModTime: fi.ModTime(),
		}, nil
	}

	d.Mkdir = func(path string, mode os.FileMode) error { return fs.Mkdir(path, mode) }
	d.Rmdir = fs.Remove

	return d
}
