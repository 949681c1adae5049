package rewrite

import (
	"bytes"
	"errors"
	"log/slog"
	"os"

	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/shared/semver"
)

// ErrNoMatch is returned in strict mode when a target file holds no occurrence of the old version.
var ErrNoMatch = errors.New("old version not found")

// Kind selects the match rule applied to a target file.
type Kind string

const (
	KindPackageInit Kind = "package-init"
	KindCitation    Kind = "citation"
	KindManifest    Kind = "manifest"
	KindReadme      Kind = "readme"
)

// Target is a file that carries the package version.
type Target struct {
	Path string
	Kind Kind
}

// FilePlan holds the in-memory rewrite of one target.
type FilePlan struct {
	Target
	Original     []byte
	Updated      []byte
	MatchedLines int
	Mode         os.FileMode
}

// Changed reports whether the rewrite alters the file.
func (p FilePlan) Changed() bool {
	return !bytes.Equal(p.Original, p.Updated)
}

// Plan is the full set of rewrites for one version bump.
type Plan struct {
	Old   semver.Version
	New   semver.Version
	Files []FilePlan
}

// Changes summarises the plan without touching the filesystem.
func (p *Plan) Changes() []model.FileChange {
	changes := make([]model.FileChange, 0, len(p.Files))
	for _, f := range p.Files {
		changes = append(changes, model.FileChange{
			Path:         f.Path,
			Kind:         string(f.Kind),
			MatchedLines: f.MatchedLines,
			Changed:      f.Changed(),
		})
	}
	return changes
}

type service struct {
	logger *slog.Logger
	strict bool
}

// Service is the interface for the version rewrite service.
type Service interface {
	Plan(targets []Target, oldVersion, newVersion semver.Version) (*Plan, error)
	Apply(plan *Plan) ([]model.FileChange, error)
}
