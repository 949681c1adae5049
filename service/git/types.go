package git

import (
	"context"

	"github.com/drugner/drugdict/service/runner"
)

type service struct {
	runner   runner.Service
	repoRoot string
}

// Service is the interface for the version control operations of a release.
type Service interface {
	Stage(ctx context.Context, files []string) error
	Commit(ctx context.Context, message string) (string, error)
	Push(ctx context.Context, remote, branch string) error
}
