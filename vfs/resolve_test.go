package vfs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(fs *fakeFS, auth AuthLookup) *Router {
	r := NewRouter(fs.driver(), auth, "alice")
	r.Setcwd("/", "/")
	return r
}

func TestResolveFullWalksDirectories(t *testing.T) {
	fs := newFakeFS()
	fs.mkdir("/a")
	fs.mkdir("/a/b")
	fs.touch("/a/b/file")
	r := newTestRouter(fs, nil)

	got, err := r.ResolveFull("/a/b/file")
	require.NoError(t, err)
	assert.Equal(t, "/a/b/file", got)
}

func TestResolveFullMissingTerminalIsError(t *testing.T) {
	fs := newFakeFS()
	fs.mkdir("/a")
	r := newTestRouter(fs, nil)

	_, err := r.ResolveFull("/a/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolvePartialAcceptsMissingTerminal(t *testing.T) {
	fs := newFakeFS()
	fs.mkdir("/a")
	r := newTestRouter(fs, nil)

	got, err := r.ResolvePartial("/a/missing")
	require.NoError(t, err)
	assert.Equal(t, "/a/missing", got)
}

func TestResolveMissingInteriorComponentIsErrorInBothModes(t *testing.T) {
	fs := newFakeFS()
	r := newTestRouter(fs, nil)

	_, err := r.ResolvePartial("/nope/file")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.ResolveFull("/nope/file")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveFollowsAbsoluteSymlink(t *testing.T) {
	fs := newFakeFS()
	fs.mkdir("/real")
	fs.touch("/real/file")
	fs.symlink("/link", "/real")
	r := newTestRouter(fs, nil)

	got, err := r.ResolveFull("/link/file")
	require.NoError(t, err)
	assert.Equal(t, "/real/file", got)
}

func TestResolveFollowsTildeSymlinkTarget(t *testing.T) {
	fs := newFakeFS()
	fs.mkdir("/home")
	fs.mkdir("/home/alice")
	fs.touch("/home/alice/file")
	fs.symlink("/link", "~alice")
	auth := mapAuth{"alice": "/home/alice"}
	r := newTestRouter(fs, auth)

	got, err := r.ResolveFull("/link/file")
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/file", got)
}

func TestResolveDetectsSymlinkLoopByHopCount(t *testing.T) {
	fs := newFakeFS()
	// A chain long enough to exceed maxSymlinkHops without ever repeating a
	// name, so only the 32-hop bound (not inode-repeat detection, which is
	// unavailable here since fakeFileInfo.Sys() is nil) can catch it.
	const chainLen = maxSymlinkHops + 5
	for i := 0; i < chainLen; i++ {
		fs.symlink(fmt.Sprintf("/s%d", i), fmt.Sprintf("/s%d", i+1))
	}
	r := newTestRouter(fs, nil)

	_, err := r.ResolveFull("/s0")
	assert.ErrorIs(t, err, ErrLoop)
}

func TestResolveDetectsImmediateSymlinkSelfLoop(t *testing.T) {
	fs := newFakeFS()
	fs.symlink("/loop", "/loop")
	r := newTestRouter(fs, nil)

	_, err := r.ResolveFull("/loop")
	assert.ErrorIs(t, err, ErrLoop)
}

func TestResolveRegularFileRejectsTrailingComponents(t *testing.T) {
	fs := newFakeFS()
	fs.touch("/file")
	r := newTestRouter(fs, nil)

	_, err := r.ResolveFull("/file/extra")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveDotDotCollapsesAboveRoot(t *testing.T) {
	fs := newFakeFS()
	fs.mkdir("/a")
	fs.touch("/a/file")
	r := newTestRouter(fs, nil)

	got, err := r.ResolveFull("/a/../a/file")
	require.NoError(t, err)
	assert.Equal(t, "/a/file", got)
}
