// Package action generates the composite-action manifest that invokes
// the Docker-based uploader.
package action

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the generated manifest lands inside the
// checkout.
const DefaultPath = ".github/actions/run-docker-container/action.yml"

// selfRepoID is the repository ID of the action's own repository.
// Pull requests against it test the local Dockerfile instead of a
// published image.
const selfRepoID = "178055147"

// Config selects the container image the manifest points at.
type Config struct {
	// Event is the triggering workflow event (e.g. "pull_request").
	Event string

	// Ref is the fully qualified git ref being built.
	Ref string

	// Repo is the "owner/name" repository slug.
	Repo string

	// RepoID is the numeric repository ID.
	RepoID string
}

// Manifest is the composite-action manifest shape the CI consumer
// expects.
type Manifest struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Inputs      map[string]Input `yaml:"inputs"`
	Runs        Runs             `yaml:"runs"`
}

// Input describes one action input.
type Input struct {
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
}

// Runs is the docker execution stanza.
type Runs struct {
	Using string `yaml:"using"`
	Image string `yaml:"image"`
}

// Image returns the container image reference for cfg. PR builds of
// the action repository itself run against the local Dockerfile;
// everything else pulls the image published for the ref.
func Image(cfg Config) string {
	if cfg.Event == "pull_request" && cfg.RepoID == selfRepoID {
		return "../../../Dockerfile"
	}
	dockerRef := strings.ReplaceAll(cfg.Ref, "/", "-")
	return fmt.Sprintf("docker://ghcr.io/%s:%s", cfg.Repo, dockerRef)
}

// New builds the manifest for cfg.
func New(cfg Config) Manifest {
	return Manifest{
		Name:        "🏃",
		Description: "Run Docker container to upload Python distribution packages to PyPI",
		Inputs: map[string]Input{
			"user":           {Description: "PyPI user", Required: false},
			"password":       {Description: "Password for your PyPI user or an access token", Required: false},
			"repository-url": {Description: "The repository URL to use", Required: false},
			"packages-dir":   {Description: "The target directory for distribution", Required: false},
			"verify-metadata": {
				Description: "Check metadata before uploading",
				Required:    false,
			},
			"skip-existing": {
				Description: "Do not fail if a Python package distribution" +
					" exists in the target package index",
				Required: false,
			},
			"verbose":    {Description: "Show verbose output.", Required: false},
			"print-hash": {Description: "Show hash values of files to be uploaded", Required: false},
			"attestations": {
				Description: "[EXPERIMENTAL]" +
					" Enable experimental support for PEP 740 attestations." +
					" Only works with PyPI and TestPyPI via Trusted Publishing.",
				Required: false,
			},
		},
		Runs: Runs{
			Using: "docker",
			Image: Image(cfg),
		},
	}
}

// WriteFile serializes the manifest as YAML at path, creating parent
// directories as needed.
func (m Manifest) WriteFile(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
