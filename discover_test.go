package attest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDist(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("dist contents: "+name), 0o644))
	return path
}

func TestDiscoverDists_PatternOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDist(t, dir, "z-2.0.tar.gz")
	writeDist(t, dir, "a-1.0.tar.gz")
	writeDist(t, dir, "legacy-1.0.zip")
	writeDist(t, dir, "a-1.0-py3-none-any.whl")
	writeDist(t, dir, "notes.txt")

	paths, err := discoverDists(dir)
	require.NoError(t, err)

	// Source archives first, then zips, then wheels; alphabetical
	// within a pattern.
	want := []string{
		filepath.Join(dir, "a-1.0.tar.gz"),
		filepath.Join(dir, "z-2.0.tar.gz"),
		filepath.Join(dir, "legacy-1.0.zip"),
		filepath.Join(dir, "a-1.0-py3-none-any.whl"),
	}
	assert.Equal(t, want, paths)

	for _, p := range paths {
		assert.True(t, filepath.IsAbs(p))
	}
}

func TestDiscoverDists_NonRecursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeDist(t, sub, "hidden-1.0.whl")

	paths, err := discoverDists(dir)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestDiscoverDists_DirectoryLooksLikeDist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDist(t, dir, "good-1.0.tar.gz")
	bad := filepath.Join(dir, "bad-1.0.zip")
	require.NoError(t, os.Mkdir(bad, 0o755))

	_, err := discoverDists(dir)
	require.ErrorIs(t, err, ErrNotRegularFile)
	assert.Contains(t, err.Error(), bad)
}

func TestDiscoverDists_EmptyDir(t *testing.T) {
	t.Parallel()

	paths, err := discoverDists(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestCheckSidecars(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeDist(t, dir, "a-1.0.tar.gz")
	b := writeDist(t, dir, "b-1.0.whl")

	require.NoError(t, checkSidecars([]string{a, b}, DefaultSuffix))

	sidecar := b + DefaultSuffix
	require.NoError(t, os.WriteFile(sidecar, []byte("{}"), 0o644))

	err := checkSidecars([]string{a, b}, DefaultSuffix)
	require.ErrorIs(t, err, ErrAttestationExists)
	assert.Contains(t, err.Error(), sidecar)
}
