package vfs

import (
	"os"
	"sync"
)

// statCache is the single-slot most-recent path→stat memoization from
// spec.md §4.5 (fs_statcache_t). It caches both the successful FileInfo
// and the error from the backing call, exactly as the source caches
// sc_stat alongside sc_errno: a cached failure is as reusable as a cached
// success within the same FTP-command granularity.
type statCache struct {
	mu    sync.Mutex
	valid bool
	path  string
	info  os.FileInfo
	err   error
}

func (c *statCache) lookup(path string) (os.FileInfo, error, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && c.path == path {
		return c.info, c.err, true
	}
	return nil, nil, false
}

func (c *statCache) store(path string, info os.FileInfo, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = true
	c.path = path
	c.info = info
	c.err = err
}

func (c *statCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	*c = statCache{}
}

// cachedStat resolves a possibly-relative path to an absolute one (using
// cwd, as the source's cache_stat does to avoid a realpath(3) call) and
// serves it from the single slot before falling through to the routed
// stat/lstat callback.
func (r *Router) cachedStat(path string, useLstat bool, statFn func(string) (os.FileInfo, error)) (os.FileInfo, error) {
	abs := path
	if abs == "" {
		return nil, ErrInvalidArgument
	}
	if abs[0] != '/' {
		abs = Dircat(r.getcwdLocked(), abs)
	}

	// The slot key carries the stat flavor as well as the path, so a cached
	// Lstat result is never served to a Stat call for the same path (or the
	// other way round).
	key := abs
	if useLstat {
		key = "lstat:" + abs
	}

	if info, err, hit := r.cache.lookup(key); hit {
		if r.Metrics != nil {
			r.Metrics.StatCacheHits.Inc()
		}
		return info, err
	}

	if r.Metrics != nil {
		r.Metrics.StatCacheMisses.Inc()
	}
	info, err := statFn(abs)
	r.cache.store(key, info, err)
	return info, err
}
