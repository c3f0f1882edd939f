// Package ghactions emits GitHub Actions workflow commands and step
// summaries.
//
// Workflow commands are single lines on stderr that the Actions runner
// parses (::debug::, ::error::). The step summary is a Markdown file
// whose path arrives in GITHUB_STEP_SUMMARY; appended content renders
// on the workflow run page.
package ghactions

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Commands writes workflow commands to Err and step summaries to the
// file at SummaryPath.
type Commands struct {
	// Err is the workflow command stream, normally os.Stderr.
	Err io.Writer

	// SummaryPath is the GITHUB_STEP_SUMMARY file. Empty disables
	// summaries.
	SummaryPath string
}

// FromEnv builds Commands wired to stderr and the step summary file
// from the environment.
func FromEnv() *Commands {
	return &Commands{
		Err:         os.Stderr,
		SummaryPath: os.Getenv("GITHUB_STEP_SUMMARY"),
	}
}

// Detect reports whether the process is running under GitHub Actions.
func Detect() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// Debugf emits a ::debug:: annotation. Debug annotations only render
// when the workflow runs with debug logging enabled.
func (c *Commands) Debugf(format string, args ...any) {
	fmt.Fprintf(c.Err, "::debug::%s\n", escape(fmt.Sprintf(format, args...)))
}

// Errorf emits a ::error:: annotation. The annotation must stay on a
// single line to be machine-parsed, so embedded newlines are escaped.
func (c *Commands) Errorf(format string, args ...any) {
	fmt.Fprintf(c.Err, "::error::%s\n", escape(fmt.Sprintf(format, args...)))
}

// AppendSummary appends Markdown to the step summary file, creating it
// if needed. A no-op when no summary path is configured.
func (c *Commands) AppendSummary(text string) error {
	if c.SummaryPath == "" {
		return nil
	}
	f, err := os.OpenFile(c.SummaryPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open step summary: %w", err)
	}
	if _, err := io.WriteString(f, text); err != nil {
		f.Close()
		return fmt.Errorf("append step summary: %w", err)
	}
	return f.Close()
}

// escape percent-encodes newlines so multi-line messages survive the
// runner's line-oriented annotation parser.
// See https://github.com/actions/toolkit/issues/193.
func escape(msg string) string {
	return strings.ReplaceAll(msg, "\n", "%0A")
}
