package attest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"
)

// Distribution describes a release distribution file eligible for
// signing: its filename, the SHA-256 digest of its contents, and its
// size in bytes.
type Distribution struct {
	Name   string
	Digest digest.Digest
	Size   int64
}

// DistributionFromFile builds a Distribution from the file at path.
func DistributionFromFile(path string) (Distribution, error) {
	f, err := os.Open(path)
	if err != nil {
		return Distribution{}, fmt.Errorf("open distribution: %w", err)
	}
	defer f.Close()

	dgst, err := digest.SHA256.FromReader(f)
	if err != nil {
		return Distribution{}, fmt.Errorf("digest distribution: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		return Distribution{}, fmt.Errorf("stat distribution: %w", err)
	}

	return Distribution{
		Name:   filepath.Base(path),
		Digest: dgst,
		Size:   info.Size(),
	}, nil
}
