package attest

import "log/slog"

// Option configures a Driver.
type Option func(*Driver) error

// WithTokenProvider sets the identity token source. Defaults to
// AmbientCredentials (GitHub Actions OIDC).
func WithTokenProvider(p TokenProvider) Option {
	return func(d *Driver) error {
		d.tokens = p
		return nil
	}
}

// WithSignerFactory sets how the run's signing session is opened.
// Defaults to a Sigstore session against the configured Fulcio and
// Rekor endpoints.
func WithSignerFactory(f SignerFactory) Option {
	return func(d *Driver) error {
		d.signers = f
		return nil
	}
}

// WithReporter sets the diagnostics reporter. By default traces are
// discarded.
func WithReporter(r Reporter) Option {
	return func(d *Driver) error {
		d.reporter = r
		return nil
	}
}

// WithLogger sets a logger for the driver. By default, logging is
// disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) error {
		d.logger = logger
		return nil
	}
}

// WithSuffix overrides the sidecar filename suffix. Defaults to
// DefaultSuffix.
func WithSuffix(suffix string) Option {
	return func(d *Driver) error {
		d.suffix = suffix
		return nil
	}
}

// WithFulcioURL overrides the Fulcio certificate authority endpoint.
func WithFulcioURL(u string) Option {
	return func(d *Driver) error {
		d.fulcioURL = u
		return nil
	}
}

// WithRekorURL overrides the Rekor transparency log endpoint.
func WithRekorURL(u string) Option {
	return func(d *Driver) error {
		d.rekorURL = u
		return nil
	}
}

// WithStaging points the driver at the Sigstore staging environment.
func WithStaging() Option {
	return func(d *Driver) error {
		d.fulcioURL = StagingFulcioURL
		d.rekorURL = StagingRekorURL
		return nil
	}
}
