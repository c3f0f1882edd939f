package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meigma/attest"
	"github.com/meigma/attest/internal/ghactions"
)

// summaryTemplate is the step-summary narrative wrapping every
// attestation failure.
const summaryTemplate = `
Attestation generation failure:

%s

You're seeing this because the action attempted to generate PEP 740
attestations for its inputs, but failed to do so.
`

// tokenRetrievalMessage renders identity failures. Attestations only
// run in trusted publishing flows, so by the time this fires the flow
// itself already succeeded; permissions can't be to blame.
const tokenRetrievalMessage = `OpenID Connect token retrieval failed: %v

This failure occurred after a successful Trusted Publishing flow,
suggesting a transient error.`

var signCmd = &cobra.Command{
	Use:   "sign <packages-dir>",
	Short: "Generate publish attestations for release distributions",
	Long: `Sign generates one PEP 740 publish attestation per release distribution
(sdist, zip, or wheel) found in the packages directory.

The signing identity comes from the ambient GitHub Actions OIDC token.
Each distribution produces a sidecar file named <dist>` + attest.DefaultSuffix + `.
A pre-existing sidecar fails the whole run: this is the publishing step,
so one should never be present.

Examples:
  attest sign dist
  attest sign dist --staging`,
	Args: cobra.ExactArgs(1),
	RunE: runSign,
}

func init() {
	rootCmd.AddCommand(signCmd)
}

func runSign(_ *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	gha := ghactions.FromEnv()

	opts := []attest.Option{
		attest.WithLogger(newLogger()),
		attest.WithFulcioURL(viper.GetString("sign.fulcio")),
		attest.WithRekorURL(viper.GetString("sign.rekor")),
	}
	if staging {
		opts = append(opts, attest.WithStaging())
	}
	if ghactions.Detect() {
		opts = append(opts, attest.WithReporter(gha))
	}

	driver, err := attest.New(opts...)
	if err != nil {
		return err
	}

	if err := driver.Run(ctx, args[0]); err != nil {
		reportFailure(gha, err)
		return err
	}
	return nil
}

// reportFailure is the single termination path for attestation
// failures: append a human-readable narrative to the step summary and
// emit a single-line error annotation. The non-zero exit comes from
// Execute propagating the error.
func reportFailure(gha *ghactions.Commands, err error) {
	msg := failureMessage(err)
	_ = gha.AppendSummary(fmt.Sprintf(summaryTemplate, msg))
	gha.Errorf("attestation generation failure: %s", msg)
}

func failureMessage(err error) string {
	if errors.Is(err, attest.ErrNoIdentity) {
		return fmt.Sprintf(tokenRetrievalMessage, err)
	}
	return err.Error()
}
