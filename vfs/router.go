// Package vfs implements the VFS Router (FSR) from spec.md: a prefix-routed
// dispatch layer over one or more driver.Driver backends, modeled on
// proftpd's pr_fs_t table together with a single default "/" driver. The
// design is grounded in rclone's backend/union prefix-policy router and
// backend/local's concrete disk backend (_examples/rclone-rclone).
package vfs

import (
	"os"
	"strings"
	"sync"

	"github.com/gaojiangqi/proftpd/internal/metrics"
	"github.com/gaojiangqi/proftpd/vfs/driver"
)

// Router is the FSR: it owns the driver table, the current/virtual working
// directory, the stat cache, and the opendir registry, and exposes the
// routed filesystem operations spec.md §4 names.
type Router struct {
	mu sync.RWMutex

	table   fsTable
	root    *driver.Driver // the default driver mounted at "/"
	cwdDrv  *driver.Driver // driver currently routing relative, no-slash lookups (fs_cwd)
	cwd     string         // real working directory, post-chroot-remap
	vwd     string         // virtual working directory, as seen by the client
	chroots []string       // original prefixes Chroot dropped because they fell outside the new root

	auth        AuthLookup
	currentUser string

	cache statCache
	dirs  openDirRegistry

	// Metrics is optional; nil disables instrumentation entirely so tests
	// and simple embeddings don't need a prometheus registry.
	Metrics *metrics.Metrics
}

// NewRouter builds a Router with root mounted as the default "/" driver.
// currentUser seeds Interpolate's no-explicit-user fallback (the session's
// authenticated login name).
func NewRouter(root *driver.Driver, auth AuthLookup, currentUser string) *Router {
	if root.Prefix == "" {
		root.Prefix = "/"
	}
	r := &Router{
		root:        root,
		cwdDrv:      root,
		cwd:         "/",
		vwd:         "/",
		auth:        auth,
		currentUser: currentUser,
	}
	return r
}

// Register mounts drv at rawPath, cleaning the path first. An exact
// duplicate prefix is rejected (ErrDuplicatePrefix), matching
// pr_insert_fs.
func (r *Router) Register(name, rawPath string, drv *driver.Driver) error {
	if rawPath == "" {
		return ErrInvalidArgument
	}
	clean := CleanPath(rawPath)
	if !strings.HasSuffix(clean, "/") {
		clean += "/"
	}
	drv.Name = name
	drv.Prefix = clean
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.table.insert(drv)
	r.reportTableSizeLocked()
	return err
}

// Unregister removes the driver mounted at the exact cleaned prefix.
func (r *Router) Unregister(rawPath string) error {
	clean := CleanPath(rawPath)
	if !strings.HasSuffix(clean, "/") {
		clean += "/"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.table.remove(clean) {
		return ErrNotFound
	}
	r.reportTableSizeLocked()
	return nil
}

func (r *Router) reportTableSizeLocked() {
	if r.Metrics != nil {
		r.Metrics.DriverTableSize.Set(float64(len(r.table.entries)))
	}
}

// GetFS returns the driver that should handle an already-absolute path,
// and whether the match was an exact prefix hit (vs. a best-match
// trailing-slash containment).
func (r *Router) GetFS(path string) (*driver.Driver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.lookup(path, r.root)
}

// ClearCache invalidates the single-slot stat cache and the opendir MRU
// shortcut, the equivalent of pr_fs_clear_cache called after any operation
// that could invalidate cached metadata (rename, unlink, mkdir, rmdir...).
func (r *Router) ClearCache() {
	r.cache.clear()
	r.dirs.mu.Lock()
	r.dirs.mru = nil
	r.dirs.mu.Unlock()
}

// Getcwd returns the real (post-chroot) working directory.
func (r *Router) Getcwd() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cwd
}

// Getvwd returns the virtual working directory presented to the client.
func (r *Router) Getvwd() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.vwd
}

// getcwdLocked is for internal callers (cachedStat, statProbe). Like
// Getcwd it takes r.mu's read lock itself, so the caller must not already
// hold r.mu.
func (r *Router) getcwdLocked() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cwd
}

// Setcwd changes the real and virtual working directories after the
// caller has validated path is a directory. vwd is the client-visible
// form (which may retain a leading chroot-relative "~" or differ from cwd
// across a chroot boundary); cwd is the absolute path on the real
// filesystem. The cwd-routing driver is refreshed to match.
func (r *Router) Setcwd(cwd, vwd string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cwd = cwd
	r.vwd = vwd
	r.cwdDrv, _ = r.table.lookup(cwd+"/", r.root)
	r.cache.clear()
	r.dirs.clear()
}

// ValidPath reports whether path resolves to something under the current
// root without escaping it via ".." or a symlink, by delegating to
// ResolveFull and checking for an error.
func (r *Router) ValidPath(path string) bool {
	_, err := r.ResolveFull(path)
	return err == nil
}

// statProbe is the StatFunc Interpolate uses to test whether a bare
// "~name" is a literal file rather than a username. It runs outside the
// stat cache since it's a short-lived tiebreak, not a routed op an FTP
// command will repeat.
func (r *Router) statProbe(path string) bool {
	abs := path
	if abs == "" || abs[0] != '/' {
		abs = Dircat(r.getcwdLocked(), path)
	}
	drv, _ := r.GetFS(abs)
	if drv == nil || drv.Lstat == nil {
		return false
	}
	_, err := drv.Lstat(abs)
	return err == nil
}

// interpolate is the Router-bound convenience wrapper around the
// free-standing Interpolate function.
func (r *Router) interpolate(path string) (string, bool, error) {
	if r.auth == nil {
		return path, false, nil
	}
	return Interpolate(r.auth, r.statProbe, path, r.currentUser)
}

// inodeOf extracts a platform inode number from os.FileInfo, used by the
// resolver's immediate symlink-cycle check. ok is false when the platform
// doesn't expose one (e.g. non-unix), in which case the resolver falls
// back to the 32-hop counter alone.
func inodeOf(fi os.FileInfo) (ino uint64, ok bool) {
	return platformInode(fi)
}
