// Package cli implements the attest command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixge/fgprof"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/meigma/attest"
	"github.com/meigma/attest/cmd/attest/cli/config"
)

// Build information set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	verbose     bool
	staging     bool
	profilePath string
)

var profileStop func() error

var rootCmd = &cobra.Command{
	Use:   "attest",
	Short: "Generate publish attestations for Python release pipelines",
	Long: `Attest is the signing step of a CI-based PyPI publishing pipeline.

It generates PEP 740 publish attestations for built distributions using
Sigstore keyless signing, and generates the composite-action manifest
that invokes the Docker-based uploader.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug logging")
	rootCmd.PersistentFlags().BoolVar(&staging, "staging", false, "Use the Sigstore staging environment")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "Write a CPU profile to this file")
	_ = rootCmd.PersistentFlags().MarkHidden("profile")
	rootCmd.Version = version
}

func setup(_ *cobra.Command, _ []string) error {
	if err := config.Load(); err != nil {
		return err
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			return err
		}
		stop := fgprof.Start(f, fgprof.FormatPprof)
		profileStop = func() error {
			if err := stop(); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		}
	}
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if profileStop != nil {
		return profileStop()
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
	return err
}

// newLogger builds the CLI logger: text for terminals, JSON for
// captured output.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// signalContext returns a context that is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// formatError converts attest errors to user-friendly messages.
func formatError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, attest.ErrNoIdentity):
		return fmt.Sprintf("Error: identity token retrieval failed: %v", err)
	case errors.Is(err, attest.ErrNotRegularFile):
		return fmt.Sprintf("Error: invalid distribution path: %v", err)
	case errors.Is(err, attest.ErrAttestationExists):
		return fmt.Sprintf("Error: refusing to overwrite: %v", err)
	case errors.Is(err, context.Canceled):
		return "Error: operation canceled"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
