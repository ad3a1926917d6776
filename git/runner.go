// Package git provides access to git operations via shell commands.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/emoscope"
)

// Compile-time interface verification.
var _ emoscope.MessageSource = (*LogSource)(nil)

// Runner executes git commands via shell.
type Runner struct{}

// NewRunner creates a new git runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Messages returns the subjects of the most recent commits in the repository
// at repoPath, newest first. A limit of zero or less returns all commits.
func (r *Runner) Messages(ctx context.Context, repoPath string, limit int) ([]string, error) {
	args := []string{"-C", repoPath, "log", "--format=%s"}
	if limit > 0 {
		args = append(args, fmt.Sprintf("-n%d", limit))
	}
	output, err := run(ctx, "log", args)
	if err != nil {
		return nil, err
	}

	var subjects []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			subjects = append(subjects, line)
		}
	}
	return subjects, nil
}

// Show returns the patch for a specific commit.
func (r *Runner) Show(ctx context.Context, repoPath string, rev string) (string, error) {
	return run(ctx, "show", []string{"-C", repoPath, "show", "--format=", rev})
}

func run(ctx context.Context, name string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git %s failed: %s", name, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s failed: %w", name, err)
	}
	return string(output), nil
}

// LogSource adapts Runner.Messages to emoscope.MessageSource.
type LogSource struct {
	Runner   *Runner
	RepoPath string
	Limit    int
}

// Messages returns commit subjects.
func (s *LogSource) Messages(ctx context.Context) ([]string, error) {
	return s.Runner.Messages(ctx, s.RepoPath, s.Limit)
}
