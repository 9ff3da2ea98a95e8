package vfs

import (
	"os"
	"strings"
)

// resolveMode selects between ResolvePartial's lenient terminal-component
// handling and ResolveFull's strict every-component-must-exist behavior.
type resolveMode int

const (
	modePartial resolveMode = iota
	modeFull
)

const maxSymlinkHops = 32

// ResolvePartial resolves path to an absolute, ".."/"."-collapsed,
// symlink-followed form, the way pr_fs_resolve_partial does: every
// interior component must exist and (if a symlink) be followable, but the
// terminal component is allowed to be missing — its constructed absolute
// path is still returned. This is what lets "put" target a file that
// doesn't exist yet.
func (r *Router) ResolvePartial(path string) (string, error) {
	return r.resolve(path, modePartial)
}

// ResolveFull additionally requires the terminal component to exist,
// mirroring pr_fs_resolve_path. Per spec.md §9 Open Question 3, this
// deliberately reuses ResolvePartial's tilde-interpolation success
// semantics (a failed Interpolate is a hard error in both modes) rather
// than inventing a stricter variant; the two differ only in how they
// treat a missing terminal component.
func (r *Router) ResolveFull(path string) (string, error) {
	return r.resolve(path, modeFull)
}

func (r *Router) resolve(path string, mode resolveMode) (string, error) {
	if path == "" {
		return "", ErrInvalidArgument
	}

	curpath := path
	if interp, done, err := r.interpolate(curpath); err != nil {
		return "", err
	} else if done {
		curpath = interp
	}

	var work string
	if strings.HasPrefix(curpath, "/") {
		work = ""
	} else {
		work = r.Getcwd()
	}

	linkHops := 0
	var lastInode uint64
	haveLastInode := false

	for {
		redirected := false
		where := curpath

		for where != "" {
			switch {
			case where == ".":
				where = ""
				continue
			case strings.HasPrefix(where, "./"):
				where = where[2:]
				continue
			case where == "..":
				work = popSegment(work)
				where = ""
				continue
			case strings.HasPrefix(where, "../"):
				work = popSegment(work)
				where = where[3:]
				continue
			}

			seg := where
			rest := ""
			if idx := strings.IndexByte(where, '/'); idx >= 0 {
				seg = where[:idx]
				rest = where[idx+1:]
			}
			namebuf := Dircat(work, seg)

			drv, _ := r.GetFS(namebuf)
			if drv == nil || drv.Lstat == nil {
				return "", ErrNotPermitted
			}

			fi, statErr := r.cachedStat(namebuf, true, drv.Lstat)
			if statErr != nil {
				if mode == modeFull || rest != "" {
					return "", ErrNotFound
				}
				// Partial mode, terminal component: accept the
				// constructed (nonexistent) path as the result.
				work = namebuf
				where = ""
				continue
			}

			if fi.Mode()&os.ModeSymlink != 0 {
				if drv.Readlink == nil {
					return "", ErrNotFound
				}
				if ino, ok := inodeOf(fi); ok {
					if haveLastInode && ino == lastInode {
						return "", ErrLoop
					}
					lastInode = ino
					haveLastInode = true
				}
				linkHops++
				if linkHops > maxSymlinkHops {
					return "", ErrLoop
				}

				target, rlErr := drv.Readlink(namebuf)
				if rlErr != nil || target == "" {
					return "", ErrNotFound
				}

				if strings.HasPrefix(target, "/") {
					work = ""
				}
				if strings.HasPrefix(target, "~") {
					work = ""
					if interp, done, err := r.interpolate(target); err != nil {
						return "", err
					} else if done {
						target = interp
					}
				}
				if rest != "" {
					target = Dircat(target, rest)
				}

				curpath = target
				redirected = true
				where = ""
				continue
			}

			if fi.IsDir() {
				work = namebuf
				where = rest
				continue
			}

			// Regular (or other non-dir, non-symlink) file: it cannot own
			// a remaining path tail.
			if rest != "" {
				return "", ErrNotFound
			}
			work = namebuf
			where = ""
		}

		if !redirected {
			break
		}
	}

	if work == "" {
		work = "/"
	}
	return work, nil
}
