package attest

import "context"

// TokenProvider retrieves an OIDC identity token proving the pipeline's
// identity to the signing authority. A token is fetched once per run.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Signer is a signing session scoped to a single run. One session is
// opened per run and reused for every distribution in it.
type Signer interface {
	// Sign produces a publish attestation for the distribution.
	Sign(ctx context.Context, dist Distribution) (*Attestation, error)

	// Close releases the session. Safe to call once per session.
	Close() error
}

// SignerFactory opens a signing session bound to the run's identity
// token.
type SignerFactory func(ctx context.Context, idToken string) (Signer, error)

// Reporter receives per-artifact diagnostic traces. The CI layer
// implements it with workflow commands; tests capture it directly.
type Reporter interface {
	Debugf(format string, args ...any)
}

type noopReporter struct{}

func (noopReporter) Debugf(string, ...any) {}
