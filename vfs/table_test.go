package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaojiangqi/proftpd/vfs/driver"
)

func drv(name, prefix string) *driver.Driver {
	return &driver.Driver{Name: name, Prefix: prefix}
}

func TestFsTableInsertRejectsDuplicatePrefix(t *testing.T) {
	var tbl fsTable
	require.NoError(t, tbl.insert(drv("a", "/mnt/a/")))
	err := tbl.insert(drv("b", "/mnt/a/"))
	assert.ErrorIs(t, err, ErrDuplicatePrefix)
}

func TestFsTableInsertKeepsSortedOrder(t *testing.T) {
	var tbl fsTable
	require.NoError(t, tbl.insert(drv("c", "/mnt/c/")))
	require.NoError(t, tbl.insert(drv("a", "/mnt/a/")))
	require.NoError(t, tbl.insert(drv("b", "/mnt/b/")))
	require.Len(t, tbl.entries, 3)
	assert.Equal(t, "/mnt/a/", tbl.entries[0].Prefix)
	assert.Equal(t, "/mnt/b/", tbl.entries[1].Prefix)
	assert.Equal(t, "/mnt/c/", tbl.entries[2].Prefix)
}

func TestFsTableRemoveExactOnly(t *testing.T) {
	var tbl fsTable
	require.NoError(t, tbl.insert(drv("a", "/mnt/a/")))
	assert.False(t, tbl.remove("/mnt/a/sub/"), "remove must not match a prefix-of relation")
	assert.True(t, tbl.remove("/mnt/a/"))
	assert.Empty(t, tbl.entries)
}

func TestFsTableLookupExactMatch(t *testing.T) {
	var tbl fsTable
	mnt := drv("mnt", "/mnt/")
	root := drv("root", "/")
	require.NoError(t, tbl.insert(mnt))
	require.NoError(t, tbl.insert(root))

	got, exact := tbl.lookup("/mnt/", root)
	assert.True(t, exact)
	assert.Same(t, mnt, got)
}

func TestFsTableLookupBestMatch(t *testing.T) {
	var tbl fsTable
	mnt := drv("mnt", "/mnt/")
	root := drv("root", "/")
	require.NoError(t, tbl.insert(mnt))
	require.NoError(t, tbl.insert(root))

	got, exact := tbl.lookup("/mnt/sub/file", root)
	assert.False(t, exact)
	assert.Same(t, mnt, got, "longest containing prefix should win")
}

func TestFsTableLookupFallsBackToDefault(t *testing.T) {
	var tbl fsTable
	root := drv("root", "/")
	mnt := drv("mnt", "/mnt/")
	require.NoError(t, tbl.insert(mnt))

	got, exact := tbl.lookup("/other/path", root)
	assert.False(t, exact)
	assert.Same(t, root, got)
}

func TestFsTableLookupEarlyExit(t *testing.T) {
	var tbl fsTable
	root := drv("root", "/")
	require.NoError(t, tbl.insert(drv("z", "/zzz/")))
	got, exact := tbl.lookup("/aaa/file", root)
	assert.False(t, exact)
	assert.Same(t, root, got, "a lexically later prefix must not shadow the fallback")
}
