package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/attest/internal/action"
)

var actionOutput string

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "Generate the composite-action manifest",
	Long: `Action generates the composite-action manifest that invokes the
Docker-based uploader.

The image reference is derived from the CI build context, read from the
EVENT, REF, REPO, and REPO_ID environment variables. Pull requests
against the action's own repository run the local Dockerfile; every
other build pulls the image published for its ref.

Examples:
  attest action
  attest action --output /tmp/action.yml`,
	Args: cobra.NoArgs,
	RunE: runAction,
}

func init() {
	actionCmd.Flags().StringVarP(&actionOutput, "output", "o", action.DefaultPath, "Manifest output path")
	rootCmd.AddCommand(actionCmd)
}

func runAction(_ *cobra.Command, _ []string) error {
	cfg := action.Config{
		Event:  os.Getenv("EVENT"),
		Ref:    os.Getenv("REF"),
		Repo:   os.Getenv("REPO"),
		RepoID: os.Getenv("REPO_ID"),
	}
	for _, v := range []struct{ name, value string }{
		{"EVENT", cfg.Event},
		{"REF", cfg.Ref},
		{"REPO", cfg.Repo},
		{"REPO_ID", cfg.RepoID},
	} {
		if v.value == "" {
			return fmt.Errorf("required environment variable %s is not set", v.name)
		}
	}

	manifest := action.New(cfg)
	if err := manifest.WriteFile(actionOutput); err != nil {
		return err
	}

	fmt.Printf("Wrote action manifest: %s\n", actionOutput)
	return nil
}
