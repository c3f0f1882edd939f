package attest

import (
	"context"
	"fmt"

	"github.com/sigstore/sigstore-go/pkg/sign"
)

// Default Sigstore endpoints.
const (
	DefaultFulcioURL = "https://fulcio.sigstore.dev"
	DefaultRekorURL  = "https://rekor.sigstore.dev"

	StagingFulcioURL = "https://fulcio.sigstage.dev"
	StagingRekorURL  = "https://rekor.sigstage.dev"
)

// sigstoreSigner is a Sigstore signing session: an ephemeral keypair
// plus bundle options carrying the run's identity token. The Fulcio
// certificate obtained for the first distribution is cached by
// sigstore-go and reused for the rest of the run.
type sigstoreSigner struct {
	keypair sign.Keypair
	opts    sign.BundleOptions
}

// newSigstoreSigner opens a signing session against the given Fulcio
// and Rekor endpoints using idToken as the certificate identity.
func newSigstoreSigner(idToken, fulcioURL, rekorURL string) (*sigstoreSigner, error) {
	keypair, err := sign.NewEphemeralKeypair(nil)
	if err != nil {
		return nil, fmt.Errorf("generate ephemeral keypair: %w", err)
	}

	opts := sign.BundleOptions{
		CertificateProvider: sign.NewFulcio(&sign.FulcioOptions{
			BaseURL: fulcioURL,
		}),
		CertificateProviderOptions: &sign.CertificateProviderOptions{
			IDToken: idToken,
		},
	}
	opts.TransparencyLogs = append(opts.TransparencyLogs,
		sign.NewRekor(&sign.RekorOptions{BaseURL: rekorURL}))

	return &sigstoreSigner{keypair: keypair, opts: opts}, nil
}

// Sign implements Signer.
func (s *sigstoreSigner) Sign(ctx context.Context, dist Distribution) (*Attestation, error) {
	stmt, err := statementJSON(dist)
	if err != nil {
		return nil, err
	}

	content := &sign.DSSEData{Data: stmt, PayloadType: payloadType}

	opts := s.opts
	opts.Context = ctx

	bundle, err := sign.Bundle(content, s.keypair, opts)
	if err != nil {
		return nil, fmt.Errorf("sigstore sign %s: %w", dist.Name, err)
	}

	return attestationFromBundle(bundle)
}

// Close implements Signer. The ephemeral private key is dropped with
// the session.
func (s *sigstoreSigner) Close() error {
	s.keypair = nil
	return nil
}

// Ensure sigstoreSigner implements Signer.
var _ Signer = (*sigstoreSigner)(nil)
