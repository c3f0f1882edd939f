package attest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
)

// Driver generates publish attestations for every release distribution
// in a directory. Construct with New and run with Run; a Driver is
// safe to reuse across runs.
type Driver struct {
	tokens   TokenProvider
	signers  SignerFactory
	reporter Reporter
	logger   *slog.Logger
	suffix   string

	fulcioURL string
	rekorURL  string
}

// New creates a Driver with the given options.
func New(opts ...Option) (*Driver, error) {
	d := &Driver{
		tokens:    AmbientCredentials{},
		reporter:  noopReporter{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		suffix:    DefaultSuffix,
		fulcioURL: DefaultFulcioURL,
		rekorURL:  DefaultRekorURL,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	if d.signers == nil {
		d.signers = func(_ context.Context, idToken string) (Signer, error) {
			return newSigstoreSigner(idToken, d.fulcioURL, d.rekorURL)
		}
	}
	return d, nil
}

// Run attests every release distribution in dir. The run is
// all-or-nothing: identity acquisition, discovery validation, and the
// sidecar preflight all happen before the first signature, and any
// per-distribution failure aborts the remainder of the run.
func (d *Driver) Run(ctx context.Context, dir string) error {
	// Identity first: a token failure must short-circuit before any
	// filesystem side effects.
	idToken, err := d.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoIdentity, err)
	}

	dists, err := discoverDists(dir)
	if err != nil {
		return err
	}
	if err := checkSidecars(dists, d.suffix); err != nil {
		return err
	}

	if len(dists) == 0 {
		d.logger.Info("no distributions found", "dir", dir)
		return nil
	}

	signer, err := d.signers(ctx, idToken)
	if err != nil {
		return fmt.Errorf("open signing session: %w", err)
	}
	defer signer.Close()

	d.reporter.Debugf("attesting to dists: %v", dists)
	for _, dist := range dists {
		if err := d.attest(ctx, signer, dist); err != nil {
			return err
		}
	}
	return nil
}

// attest signs one distribution and persists the sidecar attestation.
func (d *Driver) attest(ctx context.Context, signer Signer, path string) error {
	dist, err := DistributionFromFile(path)
	if err != nil {
		return err
	}

	attestation, err := signer.Sign(ctx, dist)
	if err != nil {
		return err
	}

	sidecar := path + d.suffix
	if err := attestation.WriteFile(sidecar); err != nil {
		return err
	}

	d.logger.Debug("saved publish attestation",
		"dist", path, "attestation", sidecar, "size", dist.Size)
	d.reporter.Debugf("saved publish attestation: dist=%s attestation=%s (%s)",
		path, sidecar, humanize.Bytes(uint64(dist.Size)))
	return nil
}
