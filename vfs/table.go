package vfs

import (
	"sort"
	"strings"

	"github.com/gaojiangqi/proftpd/vfs/driver"
)

// fsTable is the sorted, prefix-keyed driver registry from spec.md §4.3
// (pr_register_fs/pr_insert_fs/pr_unregister_fs/pr_get_fs). Keeping it
// sorted by Prefix lets GetFS do a single linear scan with an early exit
// instead of re-sorting on every lookup, the same trade the source makes
// by re-sorting once at mount time and treating the table as read-mostly.
type fsTable struct {
	entries []*driver.Driver
	dirty   bool // table_changed: set on any insert/remove
}

func (t *fsTable) sortLocked() {
	sort.Slice(t.entries, func(i, j int) bool {
		return t.entries[i].Prefix < t.entries[j].Prefix
	})
	t.dirty = false
}

// insert adds drv in prefix order, rejecting an exact-prefix duplicate the
// way pr_insert_fs refuses to mount two drivers on the same canonical
// path.
func (t *fsTable) insert(drv *driver.Driver) error {
	for _, e := range t.entries {
		if e.Prefix == drv.Prefix {
			return ErrDuplicatePrefix
		}
	}
	t.entries = append(t.entries, drv)
	t.sortLocked()
	t.dirty = true
	return nil
}

// remove drops the driver owning the exact prefix, mirroring
// pr_unregister_fs's exact-match removal (no prefix-of removal).
func (t *fsTable) remove(prefix string) bool {
	for i, e := range t.entries {
		if e.Prefix == prefix {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			t.dirty = true
			return true
		}
	}
	return false
}

// lookup returns the best driver for path and whether the match was exact.
// The table is sorted ascending by Prefix, so the scan can stop as soon as
// it passes path lexically: nothing further in the table can be a better
// match. A trailing-slash prefix that is a literal prefix of path updates
// the running "best" candidate; an exact Prefix==path match short-circuits
// immediately, mirroring pr_get_fs's two-tier exact-vs-best-match logic.
func (t *fsTable) lookup(path string, fallback *driver.Driver) (*driver.Driver, bool) {
	best := fallback
	for _, e := range t.entries {
		if e.Prefix == path {
			return e, true
		}
		if strings.HasSuffix(e.Prefix, "/") && strings.HasPrefix(path, e.Prefix) {
			best = e
		}
		if e.Prefix > path {
			break
		}
	}
	return best, false
}
