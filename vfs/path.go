package vfs

import (
	"strings"
)

// PathMax bounds path lengths the way MAXPATHLEN bounds pr_fs_dircat's
// fixed buffer in the source; Go strings don't need a cap to stay memory
// safe, but the overflow behavior (fall back to "/") is preserved because
// callers rely on it as a sentinel for "this path is nonsense".
const PathMax = 4096

// Dircat concatenates dir1 and dir2 the way pr_fs_dircat does: if dir2 is
// absolute it wins outright; otherwise dir1 gets a "/" inserted if it
// doesn't already end in one. If the combined length would overflow
// PathMax, it returns "/" rather than a truncated path.
func Dircat(dir1, dir2 string) string {
	if len(dir1)+len(dir2)+1 > PathMax {
		return "/"
	}

	if strings.HasPrefix(dir2, "/") {
		return dir2
	}

	var b strings.Builder
	b.WriteString(dir1)
	if dir1 == "" || !strings.HasSuffix(dir1, "/") {
		b.WriteByte('/')
	}
	b.WriteString(dir2)

	out := b.String()
	if out == "" {
		return "/"
	}
	return out
}

// CleanPath collapses "." and ".." components without ever touching the
// filesystem, mirroring pr_fs_clean_path component-by-component rather
// than delegating to path.Clean (whose handling of a leading ".." and of
// trailing slashes differs subtly from the source's semantics, and whose
// behavior for relative paths we must match exactly for CleanPath's
// idempotence property to hold the way spec.md §8 states it).
func CleanPath(p string) string {
	var workpath strings.Builder
	work := "" // current accumulated, cleaned path; Dircat makes it absolute

	cur := p
	for cur != "" {
		switch {
		case cur == ".":
			cur = ""
		case strings.HasPrefix(cur, "./"):
			cur = cur[2:]
		case cur == "..":
			work = popSegment(work)
			cur = ""
		case strings.HasPrefix(cur, "../"):
			work = popSegment(work)
			cur = cur[3:]
		default:
			seg := cur
			rest := ""
			if idx := strings.IndexByte(cur, '/'); idx >= 0 {
				seg = cur[:idx]
				rest = cur[idx+1:]
			}
			work = Dircat(work, seg)
			cur = rest
		}
	}

	if work == "" {
		return "/"
	}
	workpath.WriteString(work)
	return workpath.String()
}

// popSegment removes the last "/"-delimited segment from an accumulated
// work path, mirroring the pointer-walk in pr_fs_clean_path's ".." case.
func popSegment(work string) string {
	idx := strings.LastIndexByte(work, '/')
	if idx < 0 {
		return ""
	}
	return work[:idx]
}

// AuthLookup resolves a username to its home directory, the collaborator
// surface spec.md §6 calls Auth.getpwnam.
type AuthLookup interface {
	GetPwNam(user string) (homeDir string, ok bool)
}

// StatFunc is the minimal probe Interpolate needs to decide whether a
// literal "~foo" file exists before treating it as a username.
type StatFunc func(path string) (exists bool)

// Interpolate performs proftpd's tilde expansion (pr_fs_interpolate):
//
//   - No leading '~': returned unchanged, done=false (NO_OP).
//   - '~user/tail': split at the first '/'; the leading segment (sans '~')
//     is the username.
//   - '~' or '~/tail' with no explicit user: falls back to currentUser.
//   - A bare "~foo" (no '/') that stat()s successfully as a real file is
//     left alone (NO_OP) — the literal file wins over the username guess.
//
// On a named user that doesn't resolve via auth, it reports ErrNotFound
// (ENOENT in the source).
func Interpolate(auth AuthLookup, stat StatFunc, path, currentUser string) (out string, done bool, err error) {
	if path == "" {
		return "", false, ErrInvalidArgument
	}
	if path[0] != '~' {
		return path, false, nil
	}

	var user, tail string
	hasTail := false
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		user = path[1:idx]
		tail = path[idx+1:]
		hasTail = true
	} else if stat != nil && stat(path) {
		// "~foo" exists as a literal file; don't interpolate.
		return path, false, nil
	} else {
		user = path[1:]
	}

	if user == "" {
		user = currentUser
	}

	home, ok := auth.GetPwNam(user)
	if !ok {
		return "", false, ErrNotFound
	}

	if !hasTail {
		return home, true, nil
	}
	return Dircat(home, tail), true, nil
}
