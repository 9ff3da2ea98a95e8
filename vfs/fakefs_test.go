package vfs

import (
	"os"
	"strings"
	"time"

	"github.com/gaojiangqi/proftpd/vfs/driver"
)

// fakeFileInfo is a minimal os.FileInfo double for exercising the resolver
// and table/router logic without touching a real filesystem. Sys always
// returns nil, which keeps inode-based loop detection disabled in tests
// (inodeOf degrades to "not available" exactly as it does on a platform
// with no inode_unix.go build), so loop tests rely on the 32-hop bound.
type fakeFileInfo struct {
	name      string
	isDir     bool
	isSymlink bool
}

func (f fakeFileInfo) Name() string { return f.name }
func (f fakeFileInfo) Size() int64  { return 0 }
func (f fakeFileInfo) Mode() os.FileMode {
	if f.isSymlink {
		return os.ModeSymlink
	}
	if f.isDir {
		return os.ModeDir
	}
	return 0
}
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.isDir }
func (f fakeFileInfo) Sys() any           { return nil }

type fakeNode struct {
	isDir     bool
	isSymlink bool
	target    string
}

// fakeFS is an in-memory driver.Driver backing store keyed by cleaned
// absolute path, enough to drive Router.resolve's component walk
// (directories, symlinks with absolute/relative/tilde targets, and
// missing terminal components) without a real disk.
type fakeFS struct {
	nodes map[string]fakeNode
}

func newFakeFS() *fakeFS {
	return &fakeFS{nodes: map[string]fakeNode{
		"/": {isDir: true},
	}}
}

func (f *fakeFS) mkdir(path string) {
	f.nodes[path] = fakeNode{isDir: true}
}

func (f *fakeFS) touch(path string) {
	f.nodes[path] = fakeNode{}
}

func (f *fakeFS) symlink(path, target string) {
	f.nodes[path] = fakeNode{isSymlink: true, target: target}
}

func (f *fakeFS) driver() *driver.Driver {
	return &driver.Driver{
		Name:   "fake",
		Prefix: "/",
		Lstat: func(path string) (os.FileInfo, error) {
			n, ok := f.nodes[path]
			if !ok {
				return nil, os.ErrNotExist
			}
			name := path
			if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
				name = path[idx+1:]
			}
			return fakeFileInfo{name: name, isDir: n.isDir, isSymlink: n.isSymlink}, nil
		},
		// Stat follows a chain of same-directory symlinks, bounded the way
		// the real resolver bounds hop count, so fast-path tests can
		// exercise the isStatOp=true branch without a full Router.resolve.
		Stat: func(path string) (os.FileInfo, error) {
			cur := path
			for hop := 0; hop < 32; hop++ {
				n, ok := f.nodes[cur]
				if !ok {
					return nil, os.ErrNotExist
				}
				if !n.isSymlink {
					name := cur
					if idx := strings.LastIndexByte(cur, '/'); idx >= 0 {
						name = cur[idx+1:]
					}
					return fakeFileInfo{name: name, isDir: n.isDir}, nil
				}
				cur = Dircat(dirOf(cur), n.target)
			}
			return nil, ErrLoop
		},
		Readlink: func(path string) (string, error) {
			n, ok := f.nodes[path]
			if !ok || !n.isSymlink {
				return "", os.ErrInvalid
			}
			return n.target, nil
		},
	}
}

func dirOf(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx <= 0 {
		return "/"
	}
	return path[:idx]
}
