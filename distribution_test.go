package attest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributionFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "pkg-1.0.tar.gz")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	dist, err := DistributionFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "pkg-1.0.tar.gz", dist.Name)
	assert.Equal(t, int64(5), dist.Size)
	// sha256("hello")
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		dist.Digest.Encoded())
}

func TestDistributionFromFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := DistributionFromFile(filepath.Join(t.TempDir(), "absent.whl"))
	require.Error(t, err)
}
