package vfs

import (
	"io"
	"sync"

	"github.com/gaojiangqi/proftpd/vfs/driver"
)

// openDirEntry tracks which driver owns a live DirHandle so Readdir and
// Closedir can route back to the right Opendir/Closedir/Readdir
// implementation without the caller having to remember it.
type openDirEntry struct {
	drv  *driver.Driver
	dh   driver.DirHandle
	path string
}

// openDirRegistry is find_opendir's Go counterpart: a map keyed by handle
// plus a single most-recently-used shortcut, since the overwhelming
// majority of readdir traffic is "keep reading the directory I just
// opened or just read from".
type openDirRegistry struct {
	mu      sync.Mutex
	entries map[driver.DirHandle]*openDirEntry
	mru     *openDirEntry
}

func (o *openDirRegistry) add(e *openDirEntry) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.entries == nil {
		o.entries = make(map[driver.DirHandle]*openDirEntry)
	}
	o.entries[e.dh] = e
	o.mru = e
}

func (o *openDirRegistry) find(dh driver.DirHandle) *openDirEntry {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.mru != nil && o.mru.dh == dh {
		return o.mru
	}
	e := o.entries[dh]
	if e != nil {
		o.mru = e
	}
	return e
}

func (o *openDirRegistry) remove(dh driver.DirHandle) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.entries, dh)
	if o.mru != nil && o.mru.dh == dh {
		o.mru = nil
	}
}

func (o *openDirRegistry) clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = nil
	o.mru = nil
}

// Opendir opens a directory stream, routing via LookupDir (trailing-slash
// directory-op semantics) and registering the resulting handle so
// subsequent Readdir/Closedir calls know which driver to call back into.
func (r *Router) Opendir(path string) (driver.DirHandle, error) {
	drv := r.LookupDir(path)
	if drv.Opendir == nil {
		return nil, ErrNotPermitted
	}
	abs := r.absPath(path)
	dh, err := drv.Opendir(abs)
	if err != nil {
		return nil, wrapIO("opendir", path, err)
	}
	r.dirs.add(&openDirEntry{drv: drv, dh: dh, path: abs})
	if r.Metrics != nil {
		r.Metrics.OpendirHandles.Inc()
	}
	return dh, nil
}

// Readdir returns the next entry from dh. ok is false (with a nil error)
// once the stream is exhausted, the Go-idiomatic rendering of readdir(3)
// returning NULL with errno left unchanged.
func (r *Router) Readdir(dh driver.DirHandle) (driver.DirEntry, bool, error) {
	e := r.dirs.find(dh)
	if e == nil {
		return driver.DirEntry{}, false, ErrInvalidArgument
	}
	if e.drv.Readdir == nil {
		return driver.DirEntry{}, false, ErrNotPermitted
	}
	de, err := e.drv.Readdir(dh)
	if err == io.EOF {
		return driver.DirEntry{}, false, nil
	}
	if err != nil {
		return driver.DirEntry{}, false, wrapIO("readdir", e.path, err)
	}
	return de, true, nil
}

// Closedir closes dh and drops it from the registry.
func (r *Router) Closedir(dh driver.DirHandle) error {
	e := r.dirs.find(dh)
	if e == nil {
		return ErrInvalidArgument
	}
	defer func() {
		r.dirs.remove(dh)
		if r.Metrics != nil {
			r.Metrics.OpendirHandles.Dec()
		}
	}()
	if e.drv.Closedir == nil {
		return ErrNotPermitted
	}
	return wrapIO("closedir", e.path, e.drv.Closedir(dh))
}
