package vfs

import (
	"os"
	"strings"

	"github.com/gaojiangqi/proftpd/vfs/driver"
)

// LookupDir returns the driver that owns path for a directory operation.
// Directory ops route on path+"/" so a driver mounted exactly at that
// directory matches, mirroring fs_lookup_dir's trailing-slash append for
// FSIO_DIR_COMMON ops.
func (r *Router) LookupDir(path string) *driver.Driver {
	abs := path
	if abs == "" || abs[0] != '/' {
		abs = Dircat(r.Getcwd(), path)
	}
	if !strings.HasSuffix(abs, "/") {
		abs += "/"
	}
	drv, _ := r.GetFS(abs)
	if drv == nil {
		return r.root
	}
	return drv
}

// LookupFile returns the driver that owns path for a file operation.
//
// When path has no "/" (a bare filename in the working directory),
// LookupFile takes fs_lookup_file's fast path: it stays on the
// cwd-routing driver unless that name is itself a symlink whose target
// also contains no "/", in which case it recurses on the target,
// canonicalized against cwd via CleanPath, so a same-directory symlink
// can redirect to a different mounted driver. A readlink failure, or a
// multi-component link target, falls back to the cwd driver rather than
// chasing the link further here — the resolver (ResolvePartial/
// ResolveFull) is what fully chases multi-hop links; this is purely a
// routing shortcut, not path resolution.
//
// isStatOp selects stat (follow the final symlink) vs lstat semantics for
// the fast-path existence probe, matching the source's op-dependent
// mystat choice.
//
// The bare-filename case is still relative to the Router's virtual cwd,
// never the daemon process's real working directory (vfs/localfs never
// chdirs the process — its Chdir is a no-op, since cwd tracking lives
// entirely in the Router). So every stat/readlink call below must go
// through r.absPath first, the same as every operation in fileops.go
// already does; handing a driver a bare relative name would let it fall
// through to whatever the OS process's actual cwd happens to be.
func (r *Router) LookupFile(path string, isStatOp bool) *driver.Driver {
	if !strings.Contains(path, "/") {
		drv := r.cwdDriver()
		mystat := drv.Lstat
		if isStatOp {
			mystat = drv.Stat
		}
		if mystat == nil {
			return drv
		}
		abs := r.absPath(path)
		fi, err := mystat(abs)
		if err != nil || fi.Mode()&os.ModeSymlink == 0 {
			return drv
		}
		if drv.Readlink == nil {
			return drv
		}
		target, err := drv.Readlink(abs)
		if err != nil || strings.Contains(target, "/") {
			return drv
		}
		canon := CleanPath(Dircat(r.Getcwd(), target))
		return r.LookupFile(canon, isStatOp)
	}
	return r.LookupDir(path)
}

func (r *Router) cwdDriver() *driver.Driver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cwdDrv == nil {
		return r.root
	}
	return r.cwdDrv
}
