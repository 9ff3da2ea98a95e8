package vfs

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaojiangqi/proftpd/vfs/driver"
)

type listDirHandle struct {
	entries []driver.DirEntry
	idx     int
}

func dirDriver(entries []driver.DirEntry) *driver.Driver {
	return &driver.Driver{
		Name:   "list",
		Prefix: "/",
		Opendir: func(path string) (driver.DirHandle, error) {
			return &listDirHandle{entries: entries}, nil
		},
		Readdir: func(dh driver.DirHandle) (driver.DirEntry, error) {
			h := dh.(*listDirHandle)
			if h.idx >= len(h.entries) {
				return driver.DirEntry{}, io.EOF
			}
			e := h.entries[h.idx]
			h.idx++
			return e, nil
		},
		Closedir: func(dh driver.DirHandle) error { return nil },
	}
}

func TestOpendirReaddirClosedir(t *testing.T) {
	want := []driver.DirEntry{{Name: "a"}, {Name: "b"}}
	r := NewRouter(dirDriver(want), nil, "alice")
	r.Setcwd("/", "/")

	dh, err := r.Opendir("/")
	require.NoError(t, err)

	e1, ok, err := r.Readdir(dh)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", e1.Name)

	e2, ok, err := r.Readdir(dh)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", e2.Name)

	_, ok, err = r.Readdir(dh)
	require.NoError(t, err)
	assert.False(t, ok, "exhausted stream reports ok=false with no error")

	require.NoError(t, r.Closedir(dh))

	_, ok, err = r.Readdir(dh)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidArgument, "reading after close must fail lookup, not panic")
}

func TestOpendirRegistryMRUShortcut(t *testing.T) {
	var reg openDirRegistry
	e1 := &openDirEntry{dh: 1}
	e2 := &openDirEntry{dh: 2}
	reg.add(e1)
	reg.add(e2)

	assert.Same(t, e2, reg.find(2), "most recently added entry is the MRU hit")
	assert.Same(t, e1, reg.find(1), "falls back to the map for a non-MRU handle")
}

func TestOpendirRegistryRemoveClearsMRU(t *testing.T) {
	var reg openDirRegistry
	e1 := &openDirEntry{dh: 1}
	reg.add(e1)
	reg.remove(1)
	assert.Nil(t, reg.find(1))
}
