// Package release bumps the patch version, rewrites every version file and publishes the result.
package release

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/git"
	"github.com/drugner/drugdict/service/rewrite"
	"github.com/drugner/drugdict/service/verify"
	"github.com/drugner/drugdict/shared/semver"
	"github.com/google/uuid"
)

var (
	// ErrVerification is returned in strict mode when a planned file does not declare the new version.
	ErrVerification = errors.New("version verification failed")
	// ErrNothingChanged is returned when no target contains the current version.
	ErrNothingChanged = errors.New("no version file contains the current version")
)

// NewService creates a release service.
func NewService(rw rewrite.Service, vf verify.Service, g git.Service, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{rewriteService: rw, verifyService: vf, gitService: g, logger: logger}
}

// Release reads the current version, bumps the patch component, rewrites the
// targets and then stages, commits and pushes them. Every rewrite is planned
// and verified before the first file is written. The summary is returned even
// on failure so the caller can record how far the run got.
func (s *service) Release(ctx context.Context, opts Options) (model.ReleaseSummary, error) {
	summary := model.ReleaseSummary{RunID: uuid.NewString(), StartedAt: time.Now(), DryRun: opts.DryRun}
	done := func(err error) (model.ReleaseSummary, error) {
		summary.Duration = time.Since(summary.StartedAt)
		return summary, err
	}

	oldVersion, err := semver.ReadVersionFile(opts.VersionFile)
	if err != nil {
		return done(fmt.Errorf("failed to read current version: %w", err))
	}
	newVersion := oldVersion.BumpPatch()
	summary.OldVersion = oldVersion.String()
	summary.NewVersion = newVersion.String()
	s.logger.Info("Bumping version", "from", summary.OldVersion, "to", summary.NewVersion)

	plan, err := s.rewriteService.Plan(opts.Targets, oldVersion, newVersion)
	if err != nil {
		return done(fmt.Errorf("failed to plan rewrite: %w", err))
	}
	summary.Files = plan.Changes()
	if !anyChanged(summary.Files) {
		return done(fmt.Errorf("%w %s", ErrNothingChanged, summary.OldVersion))
	}

	summary.Verification = s.verifyService.Verify(plan)
	if failed := verify.Failed(summary.Verification); len(failed) > 0 {
		for _, f := range failed {
			s.logger.Warn("File does not declare the new version", "path", f.Path, "kind", f.Kind, "reason", f.Message)
		}
		if opts.Strict {
			return done(fmt.Errorf("%w: %d of %d files", ErrVerification, len(failed), len(summary.Verification)))
		}
	}

	if opts.DryRun {
		s.logger.Info("Dry run, nothing written")
		return done(nil)
	}

	if summary.Files, err = s.rewriteService.Apply(plan); err != nil {
		return done(fmt.Errorf("failed to rewrite version files: %w", err))
	}

	summary.Staged = s.stageList(opts)
	if err := s.gitService.Stage(ctx, summary.Staged); err != nil {
		return done(err)
	}

	message := git.CommitMessage(opts.CommitMessage, summary.NewVersion)
	if summary.CommitHash, err = s.gitService.Commit(ctx, message); err != nil {
		return done(err)
	}
	s.logger.Info("Committed release", "commit", summary.CommitHash, "message", message)

	if opts.NoPush {
		s.logger.Info("Push skipped")
		return done(nil)
	}
	if err := s.gitService.Push(ctx, opts.Remote, opts.Branch); err != nil {
		return done(err)
	}
	summary.Pushed = true
	s.logger.Info("Pushed release", "remote", opts.Remote, "branch", opts.Branch)

	return done(nil)
}

// stageList returns every target plus the extra files that exist on disk.
func (s *service) stageList(opts Options) []string {
	files := make([]string, 0, len(opts.Targets)+len(opts.Extra))
	for _, t := range opts.Targets {
		files = append(files, t.Path)
	}
	for _, extra := range opts.Extra {
		if _, err := os.Stat(extra); err != nil {
			s.logger.Warn("Not staging missing file", "path", extra)
			continue
		}
		files = append(files, extra)
	}
	return files
}

func anyChanged(files []model.FileChange) bool {
	for _, f := range files {
		if f.Changed {
			return true
		}
	}
	return false
}
