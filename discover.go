package attest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// distPatterns are the filename patterns recognized as release
// distributions: source archives, legacy zip archives, and wheels.
var distPatterns = []string{"*.tar.gz", "*.zip", "*.whl"}

// discoverDists scans dir (non-recursive) for release distributions and
// returns their absolute paths in pattern order.
//
// Everything that looks like a distribution must actually be a regular
// file. This is checked up front, before any signing, so a bad path
// aborts the run with zero attestations written.
func discoverDists(dir string) ([]string, error) {
	var paths []string
	for _, pattern := range distPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, match := range matches {
			abs, err := filepath.Abs(match)
			if err != nil {
				return nil, fmt.Errorf("resolve %s: %w", match, err)
			}
			paths = append(paths, abs)
		}
	}

	var invalid []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			invalid = append(invalid, path)
		}
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf(
			"%w: the following paths look like distributions but are not files: %s",
			ErrNotRegularFile, strings.Join(invalid, ", "))
	}

	return paths, nil
}

// checkSidecars verifies that no distribution already has a sidecar
// attestation at path+suffix. We are the publishing step, so a
// pre-existing publish attestation indicates operator confusion (a
// re-run of a step that already produced output, or a naming
// collision) and fails the whole run before anything is signed.
func checkSidecars(paths []string, suffix string) error {
	for _, path := range paths {
		sidecar := path + suffix
		if _, err := os.Lstat(sidecar); err == nil {
			return fmt.Errorf("%w: %s already has a publish attestation: %s",
				ErrAttestationExists, path, sidecar)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", sidecar, err)
		}
	}
	return nil
}
