package vfs

import "strings"

// Chroot remaps the router's notion of "/" to rawPath, mirroring
// pr_fsio_chroot: the default driver is asked to perform the underlying
// chroot(2)-equivalent (if it implements one), then every mounted
// driver's prefix is rewritten relative to the new root. A sibling
// driver whose prefix falls entirely outside the new root can no longer
// be reached through any path and is dropped from the table; its
// original prefix is kept on r.chroots purely so DESIGN.md-level tooling
// and tests can observe what chrooting discarded.
func (r *Router) Chroot(rawPath string) error {
	resolved, err := r.ResolveFull(rawPath)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.root.Chroot != nil {
		if err := r.root.Chroot(resolved); err != nil {
			return wrapIO("chroot", rawPath, err)
		}
	}

	newRootPrefix := resolved
	if !strings.HasSuffix(newRootPrefix, "/") {
		newRootPrefix += "/"
	}

	kept := r.table.entries[:0:0]
	for _, e := range r.table.entries {
		switch {
		case e.Prefix == newRootPrefix:
			e.Prefix = "/"
			kept = append(kept, e)
		case strings.HasPrefix(e.Prefix, newRootPrefix):
			e.Prefix = "/" + strings.TrimPrefix(e.Prefix, newRootPrefix)
			kept = append(kept, e)
		default:
			r.chroots = append(r.chroots, e.Prefix)
		}
	}
	r.table.entries = kept
	r.table.sortLocked()

	r.root.Prefix = "/"
	r.cwd = "/"
	r.vwd = "/"
	r.cwdDrv = r.root

	r.cache.clear()
	r.dirs.clear()
	return nil
}
