package runner

import (
	"context"
	"io"
	"log/slog"
)

// Command is one external program invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

type service struct {
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

// Service is the interface for running external commands.
type Service interface {
	// Run executes the command, streaming its output, and fails on a non-zero exit.
	Run(ctx context.Context, cmd Command) error
	// Output executes the command and returns its trimmed standard output.
	Output(ctx context.Context, cmd Command) (string, error)
}
