// Package git stages, commits and pushes release changes with the git command line.
package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/drugner/drugdict/service/runner"
)

// VersionPlaceholder is substituted in commit message templates.
const VersionPlaceholder = "{version}"

// NewService creates a git service operating on the repository at repoRoot.
func NewService(r runner.Service, repoRoot string) Service {
	return &service{runner: r, repoRoot: repoRoot}
}

// CommitMessage renders a commit message template for version.
func CommitMessage(template, version string) string {
	if !strings.Contains(template, VersionPlaceholder) {
		return strings.TrimSpace(template + " " + version)
	}
	return strings.ReplaceAll(template, VersionPlaceholder, version)
}

func (s *service) git(args ...string) runner.Command {
	return runner.Command{Name: "git", Args: args, Dir: s.repoRoot}
}

func (s *service) Stage(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return fmt.Errorf("no files to stage")
	}
	args := append([]string{"add", "--"}, files...)
	if _, err := s.runner.Output(ctx, s.git(args...)); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}
	return nil
}

func (s *service) Commit(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("commit message is required")
	}
	if _, err := s.runner.Output(ctx, s.git("commit", "-m", message)); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	hash, err := s.runner.Output(ctx, s.git("rev-parse", "HEAD"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve commit: %w", err)
	}
	return hash, nil
}

func (s *service) Push(ctx context.Context, remote, branch string) error {
	args := []string{"push"}
	if remote != "" {
		args = append(args, remote)
		if branch != "" {
			args = append(args, branch)
		}
	}
	if _, err := s.runner.Output(ctx, s.git(args...)); err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}
