package vfs

import (
	"os"
	"path/filepath"
)

// Chdir resolves path fully (every component, including the terminal one,
// must exist and be reachable) and requires it to be a directory, then
// updates the router's real and virtual working directory together with
// the cwd-routing driver shortcut.
func (r *Router) Chdir(path string) error {
	resolved, err := r.ResolveFull(path)
	if err != nil {
		return err
	}
	drv, _ := r.GetFS(resolved + "/")
	if drv == nil || drv.Stat == nil {
		return ErrNotPermitted
	}
	fi, err := drv.Stat(resolved)
	if err != nil {
		return wrapIO("chdir", path, err)
	}
	if !fi.IsDir() {
		return ErrInvalidArgument
	}

	vwd := resolved
	r.Setcwd(resolved, vwd)
	return nil
}

func (r *Router) Mkdir(path string, mode os.FileMode) error {
	drv := r.LookupDir(path)
	if drv.Mkdir == nil {
		return ErrNotPermitted
	}
	err := drv.Mkdir(r.absPath(path), mode)
	r.ClearCache()
	return wrapIO("mkdir", path, err)
}

func (r *Router) Rmdir(path string) error {
	drv := r.LookupDir(path)
	if drv.Rmdir == nil {
		return ErrNotPermitted
	}
	err := drv.Rmdir(r.absPath(path))
	r.ClearCache()
	return wrapIO("rmdir", path, err)
}

// GetSize is a thin convenience wrapper around Stat, matching the
// reporting the source does for SIZE/directory-listing size columns.
func (r *Router) GetSize(path string) (int64, error) {
	fi, err := r.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// Glob expands a shell-style wildcard pattern against the entries of its
// containing directory, the way the source's glob(3) fallback walks
// opendir/readdir rather than depending on a real filesystem glob when a
// driver isn't backed by a real directory tree.
func (r *Router) Glob(pattern string) ([]string, error) {
	dir := filepath.Dir(pattern)
	base := filepath.Base(pattern)

	dh, err := r.Opendir(dir)
	if err != nil {
		return nil, err
	}
	defer r.Closedir(dh)

	var out []string
	for {
		entry, ok, err := r.Readdir(dh)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		matched, err := filepath.Match(base, entry.Name)
		if err != nil {
			return nil, err
		}
		if matched {
			out = append(out, Dircat(dir, entry.Name))
		}
	}
	return out, nil
}
