package release

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drugner/drugdict/service/rewrite"
	"github.com/drugner/drugdict/service/verify"
	"github.com/drugner/drugdict/shared/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGit struct {
	staged  []string
	message string
	pushed  []string
	failOn  string
}

func (g *fakeGit) Stage(_ context.Context, files []string) error {
	if g.failOn == "stage" {
		return errors.New("failed to stage files: pathspec did not match")
	}
	g.staged = append(g.staged, files...)
	return nil
}

func (g *fakeGit) Commit(_ context.Context, message string) (string, error) {
	if g.failOn == "commit" {
		return "", errors.New("failed to commit: nothing to commit")
	}
	g.message = message
	return "4b825dc642cb6eb9a060e54bf8d69288fbee4904", nil
}

func (g *fakeGit) Push(_ context.Context, remote, branch string) error {
	if g.failOn == "push" {
		return errors.New("failed to push: rejected")
	}
	g.pushed = []string{remote, branch}
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type repo struct {
	dir     string
	init    string
	targets []rewrite.Target
	csv     string
}

func newRepo(t *testing.T, version string) repo {
	t.Helper()
	dir := t.TempDir()
	files := []struct {
		name    string
		kind    rewrite.Kind
		content string
	}{
		{"__init__.py", rewrite.KindPackageInit, "__version__ = \"" + version + "\"\n"},
		{"CITATION.cff", rewrite.KindCitation, "cff-version: 1.2.0\ntitle: Drug NER\nversion: " + version + "\n"},
		{"pyproject.toml", rewrite.KindManifest, "[project]\nname = \"drug-ner\"\nversion = \"" + version + "\"\n"},
		{"README.md", rewrite.KindReadme, "# Drug NER\n\nVersion " + version + " of the dictionary.\n"},
	}
	r := repo{dir: dir}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		require.NoError(t, os.WriteFile(path, []byte(f.content), 0o644))
		r.targets = append(r.targets, rewrite.Target{Path: path, Kind: f.kind})
	}
	r.init = r.targets[0].Path
	r.csv = filepath.Join(dir, "drugbank vocabulary.csv")
	require.NoError(t, os.WriteFile(r.csv, []byte("id,name\n"), 0o644))
	return r
}

func (r repo) options() Options {
	return Options{
		VersionFile:   r.init,
		Targets:       r.targets,
		Extra:         []string{r.csv, filepath.Join(r.dir, "drugs_dictionary_mesh.csv")},
		CommitMessage: "Bump version to {version}",
		Remote:        "origin",
		Branch:        "main",
	}
}

func (r repo) snapshot(t *testing.T) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, target := range r.targets {
		b, err := os.ReadFile(target.Path)
		require.NoError(t, err)
		out[target.Path] = string(b)
	}
	return out
}

func newTestService(g *fakeGit, strict bool) Service {
	return NewService(rewrite.NewService(quietLogger(), strict), verify.NewService(), g, quietLogger())
}

func TestReleaseEndToEnd(t *testing.T) {
	r := newRepo(t, "3.1.4")
	g := &fakeGit{}

	summary, err := newTestService(g, false).Release(context.Background(), r.options())
	require.NoError(t, err)

	assert.Equal(t, "3.1.4", summary.OldVersion)
	assert.Equal(t, "3.1.5", summary.NewVersion)
	assert.NotEmpty(t, summary.RunID)
	assert.True(t, summary.Pushed)
	assert.Equal(t, "4b825dc642cb6eb9a060e54bf8d69288fbee4904", summary.CommitHash)
	assert.Len(t, summary.Files, 4)
	for _, f := range summary.Files {
		assert.True(t, f.Changed, f.Path)
	}
	assert.Empty(t, verify.Failed(summary.Verification))

	v, err := semver.ReadVersionFile(r.init)
	require.NoError(t, err)
	assert.Equal(t, "3.1.5", v.String())
	for path, content := range r.snapshot(t) {
		assert.Contains(t, content, "3.1.5", path)
		assert.NotContains(t, content, "3.1.4", path)
	}

	assert.Equal(t, "Bump version to 3.1.5", g.message)
	assert.Equal(t, []string{"origin", "main"}, g.pushed)
	assert.Len(t, g.staged, 5, "four targets plus the existing csv")
	assert.Contains(t, g.staged, r.csv)
}

func TestReleaseTwiceBumpsAgain(t *testing.T) {
	r := newRepo(t, "2.0.9")
	svc := newTestService(&fakeGit{}, true)

	first, err := svc.Release(context.Background(), r.options())
	require.NoError(t, err)
	assert.Equal(t, "2.0.10", first.NewVersion)

	second, err := svc.Release(context.Background(), r.options())
	require.NoError(t, err)
	assert.Equal(t, "2.0.11", second.NewVersion)

	readme, err := os.ReadFile(r.targets[3].Path)
	require.NoError(t, err)
	assert.Contains(t, string(readme), "Version 2.0.11 of")
}

func TestReleaseMissingVersionModifiesNothing(t *testing.T) {
	r := newRepo(t, "1.0.0")
	require.NoError(t, os.WriteFile(r.init, []byte("# no version here\n"), 0o644))
	before := r.snapshot(t)
	g := &fakeGit{}

	_, err := newTestService(g, false).Release(context.Background(), r.options())
	require.Error(t, err)
	assert.ErrorIs(t, err, semver.ErrVersionNotFound)

	assert.Equal(t, before, r.snapshot(t))
	assert.Empty(t, g.staged)
	assert.Empty(t, g.message)
}

func TestReleaseStagesVersionFilesAndBothCSVs(t *testing.T) {
	r := newRepo(t, "3.1.4")
	mesh := filepath.Join(r.dir, "drugs_dictionary_mesh.csv")
	require.NoError(t, os.WriteFile(mesh, []byte("id,name\n"), 0o644))
	g := &fakeGit{}

	_, err := newTestService(g, false).Release(context.Background(), r.options())
	require.NoError(t, err)

	want := make([]string, 0, 6)
	for _, target := range r.targets {
		want = append(want, target.Path)
	}
	want = append(want, r.csv, mesh)
	assert.Equal(t, want, g.staged)
}

func TestReleaseRejectsNonCanonicalVersion(t *testing.T) {
	for _, declared := range []string{"1.02.3", " 1.2.3", "1.2.3 "} {
		t.Run(declared, func(t *testing.T) {
			r := newRepo(t, declared)
			before := r.snapshot(t)
			g := &fakeGit{}

			summary, err := newTestService(g, false).Release(context.Background(), r.options())
			require.Error(t, err)
			assert.ErrorIs(t, err, semver.ErrInvalidVersion)
			assert.Empty(t, summary.NewVersion)

			assert.Equal(t, before, r.snapshot(t))
			assert.Empty(t, g.staged)
			assert.Empty(t, g.message)
			assert.Empty(t, g.pushed)
		})
	}
}

func TestReleaseLenientWithNoMatchingFileCommitsNothing(t *testing.T) {
	r := newRepo(t, "1.0.0")
	for _, target := range r.targets[1:] {
		require.NoError(t, os.WriteFile(target.Path, []byte("no version here\n"), 0o644))
	}
	opts := r.options()
	opts.Targets = r.targets[1:]
	before := r.snapshot(t)
	g := &fakeGit{}

	_, err := newTestService(g, false).Release(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNothingChanged)
	assert.Equal(t, before, r.snapshot(t))
	assert.Empty(t, g.staged)
	assert.Empty(t, g.message)
}

func TestReleaseStrictNoMatchModifiesNothing(t *testing.T) {
	r := newRepo(t, "1.0.0")
	require.NoError(t, os.WriteFile(r.targets[3].Path, []byte("# Drug NER\n\nNo version phrase.\n"), 0o644))
	before := r.snapshot(t)
	g := &fakeGit{}

	_, err := newTestService(g, true).Release(context.Background(), r.options())
	require.Error(t, err)
	assert.ErrorIs(t, err, rewrite.ErrNoMatch)
	assert.Equal(t, before, r.snapshot(t))
	assert.Empty(t, g.staged)
}

func TestReleaseLenientNoMatchWarnsAndContinues(t *testing.T) {
	r := newRepo(t, "1.0.0")
	require.NoError(t, os.WriteFile(r.targets[3].Path, []byte("# Drug NER\n"), 0o644))

	summary, err := newTestService(&fakeGit{}, false).Release(context.Background(), r.options())
	require.NoError(t, err)

	failed := verify.Failed(summary.Verification)
	require.Len(t, failed, 1)
	assert.Equal(t, r.targets[3].Path, failed[0].Path)
	for _, f := range summary.Files {
		assert.Equal(t, f.Path != r.targets[3].Path, f.Changed, f.Path)
	}
}

func TestReleaseDryRun(t *testing.T) {
	r := newRepo(t, "3.1.4")
	before := r.snapshot(t)
	g := &fakeGit{}
	opts := r.options()
	opts.DryRun = true

	summary, err := newTestService(g, false).Release(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	assert.Equal(t, "3.1.5", summary.NewVersion)
	assert.Len(t, summary.Files, 4)
	assert.Equal(t, before, r.snapshot(t))
	assert.Empty(t, g.staged)
	assert.False(t, summary.Pushed)
}

func TestReleaseNoPush(t *testing.T) {
	r := newRepo(t, "3.1.4")
	g := &fakeGit{}
	opts := r.options()
	opts.NoPush = true

	summary, err := newTestService(g, false).Release(context.Background(), opts)
	require.NoError(t, err)

	assert.NotEmpty(t, summary.CommitHash)
	assert.False(t, summary.Pushed)
	assert.Nil(t, g.pushed)
}

func TestReleaseGitFailures(t *testing.T) {
	for _, step := range []string{"stage", "commit", "push"} {
		t.Run(step, func(t *testing.T) {
			r := newRepo(t, "3.1.4")
			g := &fakeGit{failOn: step}

			summary, err := newTestService(g, false).Release(context.Background(), r.options())
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), "failed to "+step), err.Error())
			assert.False(t, summary.Pushed)
			assert.Equal(t, "3.1.5", summary.NewVersion)
		})
	}
}
