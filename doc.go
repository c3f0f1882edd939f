// Package attest generates PEP 740 publish attestations for Python
// release distributions.
//
// Attest is the signing half of a CI publishing pipeline: given a
// directory of built distributions (sdists and wheels), it obtains an
// OIDC identity token from the ambient CI environment, opens a single
// Sigstore signing session, and writes one sidecar attestation per
// distribution.
//
// # Basic Usage
//
// Create a driver and run it over a packages directory:
//
//	driver, err := attest.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := driver.Run(ctx, "dist"); err != nil {
//	    log.Fatal(err)
//	}
//
// Each distribution dist/foo-1.0.tar.gz produces a sidecar file
// dist/foo-1.0.tar.gz.publish.attestation containing the serialized
// attestation.
//
// # Failure Model
//
// A run is all-or-nothing: identity failures, paths that are not
// regular files, and pre-existing sidecar files all abort the run
// before any further attestation is written. There is no retry and no
// partial-success mode. A pre-existing sidecar is deliberately fatal
// rather than skipped; it signals a re-run of a step that already
// produced output.
//
// # Identity
//
// By default the identity token is fetched from the GitHub Actions
// OIDC endpoint with audience "sigstore". Override with
// WithTokenProvider for other environments or for testing.
package attest
