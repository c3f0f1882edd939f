package attest

import "errors"

// Sentinel errors for common failure conditions.
var (
	// ErrNoIdentity indicates the OIDC identity token could not be
	// retrieved from the ambient environment.
	ErrNoIdentity = errors.New("no identity token")

	// ErrNotRegularFile indicates a discovered distribution path is not
	// a regular file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrAttestationExists indicates a distribution already has a
	// publish attestation sidecar file.
	ErrAttestationExists = errors.New("attestation already exists")
)
