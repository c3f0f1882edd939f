// Command attest generates publish attestations and CI manifests for
// the PyPI publishing pipeline.
package main

import (
	"os"

	"github.com/meigma/attest/cmd/attest/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
