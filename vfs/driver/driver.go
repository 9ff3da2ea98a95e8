// Package driver defines the capability-set abstraction that replaces the
// proftpd pr_fs_t function-pointer vtable: a named, prefix-owning bundle of
// optional filesystem operations. A nil field means the operation is not
// implemented by this driver; the vfs.Router operations turn that into ErrNotPermitted
// rather than panicking on a nil call, exactly as the source's "absence of
// a vtable slot" maps to EPERM.
package driver

import (
	"os"
	"time"
)

// DirEntry is the minimal directory-entry shape a driver's Readdir must
// produce, modeled after os.DirEntry but decoupled from it so drivers that
// are not backed by os.File (should any ever be added) aren't forced to
// fabricate one.
type DirEntry struct {
	Name    string
	IsDir   bool
	Size    int64
	Mode    os.FileMode
	ModTime time.Time
}

// DirHandle is the opaque iterator a driver's Opendir returns; the vfs
// package never inspects it, only threads it back through Readdir/Closedir.
type DirHandle interface{}

// FileHandle is the opaque per-open-file state a driver's Open/Create
// returns, threaded back through Read/Write/Seek/Close/Ftruncate.
type FileHandle interface{}

// Driver is the Go rendering of pr_fs_t: a name, an owning path prefix, and
// a set of optional operations. Every field beyond Name/Prefix may be nil.
type Driver struct {
	Name   string
	Prefix string // cleaned path prefix this driver owns; vfs.NewRouter sets the default driver's to "/"

	Stat  func(path string) (os.FileInfo, error)
	Lstat func(path string) (os.FileInfo, error)
	Fstat func(fh FileHandle) (os.FileInfo, error)

	Rename func(from, to string) error
	Unlink func(path string) error

	Open   func(path string, flag int) (FileHandle, error)
	Create func(path string, mode os.FileMode) (FileHandle, error)
	Close  func(fh FileHandle) error
	Read   func(fh FileHandle, p []byte) (int, error)
	Write  func(fh FileHandle, p []byte) (int, error)
	Seek   func(fh FileHandle, offset int64, whence int) (int64, error)

	Link      func(oldpath, newpath string) error
	Readlink  func(path string) (string, error)
	Symlink   func(oldpath, newpath string) error
	Ftruncate func(fh FileHandle, size int64) error
	Truncate  func(path string, size int64) error
	Chmod     func(path string, mode os.FileMode) error
	Chown     func(path string, uid, gid int) error

	Chdir  func(path string) error
	Chroot func(path string) error

	Opendir  func(path string) (DirHandle, error)
	Closedir func(dh DirHandle) error
	Readdir  func(dh DirHandle) (DirEntry, error)

	Mkdir func(path string, mode os.FileMode) error
	Rmdir func(path string) error
}
