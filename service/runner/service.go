// Package runner executes the external tools the maintenance commands depend on.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// NewService creates a runner that streams child output to stdout and stderr.
func NewService(logger *slog.Logger, stdout, stderr io.Writer) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &service{logger: logger, stdout: stdout, stderr: stderr}
}

// ParseCommandLine splits a whitespace separated command line into a Command.
// Quoting is not interpreted.
func ParseCommandLine(line, dir string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command line")
	}
	return Command{Name: fields[0], Args: fields[1:], Dir: dir}, nil
}

// String renders the command the way it would be typed.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

func (s *service) Run(ctx context.Context, cmd Command) error {
	s.logger.Debug("Running command", "command", cmd.String(), "dir", cmd.Dir)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = s.stdout
	c.Stderr = s.stderr

	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.String(), err)
	}
	return nil
}

func (s *service) Output(ctx context.Context, cmd Command) (string, error) {
	s.logger.Debug("Running command", "command", cmd.String(), "dir", cmd.Dir)

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = strings.TrimSpace(stdout.String())
		}
		if detail != "" {
			return "", fmt.Errorf("%s: %w: %s", cmd.String(), err, detail)
		}
		return "", fmt.Errorf("%s: %w", cmd.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
