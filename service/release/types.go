package release

import (
	"context"
	"log/slog"

	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/git"
	"github.com/drugner/drugdict/service/rewrite"
	"github.com/drugner/drugdict/service/verify"
)

// Options describes one version-bump-and-publish run.
type Options struct {
	// VersionFile holds the __version__ assignment the current version is read from.
	VersionFile string
	// Targets are rewritten from the old to the new version. VersionFile is normally one of them.
	Targets []rewrite.Target
	// Extra files staged with the targets when they exist, such as the copied vocabularies.
	Extra []string

	CommitMessage string
	Remote        string
	Branch        string

	Strict bool
	DryRun bool
	NoPush bool
}

type service struct {
	rewriteService rewrite.Service
	verifyService  verify.Service
	gitService     git.Service
	logger         *slog.Logger
}

// Service is the interface for the release workflow.
type Service interface {
	Release(ctx context.Context, opts Options) (model.ReleaseSummary, error)
}
