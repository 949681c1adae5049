package rewrite

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drugner/drugdict/shared/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	initFixture = `"""Drug named entity recognition."""

__version__ = "3.1.4"

SUPPORTED = ["3.1.4-compat"]
`
	citationFixture = `cff-version: 1.2.0
message: "If you use this software, please cite it as below."
title: Drug Named Entity Recognition
version: 3.1.4
date-released: 2024-01-01
references:
  - version: 3.1.4
`
	manifestFixture = `[project]
name = "drug-named-entity-recognition"
version = "3.1.4"
requires-python = ">=3.9"
dependencies = ["fuzzyset==3.1.4"]
`
	readmeFixture = "# Drug named entity recognition\n\nVersion 3.1.4 of the dictionary.\n\nRequires pip 3.1.4 or later.\n"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustParse(t *testing.T, s string) semver.Version {
	t.Helper()
	v, err := semver.Parse(s)
	require.NoError(t, err)
	return v
}

func TestRewriteContentRules(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		input       string
		want        string
		wantMatched int
	}{
		{
			name:        "package init replaces every quoted occurrence",
			kind:        KindPackageInit,
			input:       "__version__ = \"1.2.3\"\nVERSIONS = (\"1.2.3\", '1.2.3')\nplain = 1.2.3\n",
			want:        "__version__ = \"1.2.4\"\nVERSIONS = (\"1.2.4\", '1.2.4')\nplain = 1.2.3\n",
			wantMatched: 2,
		},
		{
			name:        "citation only touches version lines",
			kind:        KindCitation,
			input:       "cff-version: 1.2.3\nversion: 1.2.3\n  version: 1.2.3\n",
			want:        "cff-version: 1.2.3\nversion: 1.2.4\n  version: 1.2.3\n",
			wantMatched: 1,
		},
		{
			name:        "citation quoted value",
			kind:        KindCitation,
			input:       "version: \"1.2.3\"\n",
			want:        "version: \"1.2.4\"\n",
			wantMatched: 1,
		},
		{
			name:        "manifest only quoted form on version lines",
			kind:        KindManifest,
			input:       "name = \"x\"\nversion = \"1.2.3\"\ndeps = [\"y==1.2.3\"]\nversion_note = 1.2.3\n",
			want:        "name = \"x\"\nversion = \"1.2.4\"\ndeps = [\"y==1.2.3\"]\nversion_note = 1.2.3\n",
			wantMatched: 1,
		},
		{
			name:        "readme phrase",
			kind:        KindReadme,
			input:       "Version 1.2.3 is out.\nUpgrade from 1.2.3 now.\nThis is Version 1.2.3.\n",
			want:        "Version 1.2.4 is out.\nUpgrade from 1.2.3 now.\nThis is Version 1.2.4.\n",
			wantMatched: 2,
		},
		{
			name:        "readme does not match longer versions",
			kind:        KindReadme,
			input:       "Version 1.2.30\nVersion 1.2.3.1\n",
			want:        "Version 1.2.30\nVersion 1.2.3.1\n",
			wantMatched: 0,
		},
		{
			name:        "crlf endings survive",
			kind:        KindCitation,
			input:       "title: x\r\nversion: 1.2.3\r\n",
			want:        "title: x\r\nversion: 1.2.4\r\n",
			wantMatched: 1,
		},
		{
			name:        "missing final newline",
			kind:        KindReadme,
			input:       "intro\nVersion 1.2.3",
			want:        "intro\nVersion 1.2.4",
			wantMatched: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched, err := RewriteContent(tt.kind, []byte(tt.input), "1.2.3", "1.2.4")
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.wantMatched, matched)
		})
	}
}

func TestRewriteContentUnknownKind(t *testing.T) {
	_, _, err := RewriteContent(Kind("setup-cfg"), []byte("version = 1\n"), "1.2.3", "1.2.4")
	assert.Error(t, err)
}

func TestRewriteContentIsIdempotent(t *testing.T) {
	fixtures := map[Kind]string{
		KindPackageInit: "__version__ = \"2.0.9\"\n",
		KindCitation:    "version: 2.0.9\n",
		KindManifest:    "version = \"2.0.9\"\n",
		KindReadme:      "Version 2.0.9\n",
	}

	for kind, input := range fixtures {
		t.Run(string(kind), func(t *testing.T) {
			once, n1, err := RewriteContent(kind, []byte(input), "2.0.9", "2.0.10")
			require.NoError(t, err)
			require.Equal(t, 1, n1)

			twice, n2, err := RewriteContent(kind, once, "2.0.9", "2.0.10")
			require.NoError(t, err)
			assert.Equal(t, 0, n2)
			assert.Equal(t, string(once), string(twice))
			assert.Contains(t, string(twice), "2.0.10")
			assert.NotContains(t, string(twice), "2.0.100")
		})
	}
}

func TestRewriteContentIsScoped(t *testing.T) {
	input := []byte(citationFixture)
	got, _, err := RewriteContent(KindCitation, input, "3.1.4", "3.1.5")
	require.NoError(t, err)

	before := strings.Split(string(input), "\n")
	after := strings.Split(string(got), "\n")
	require.Len(t, after, len(before))
	for i := range before {
		if strings.HasPrefix(before[i], "version:") {
			assert.Equal(t, "version: 3.1.5", after[i])
			continue
		}
		assert.Equal(t, before[i], after[i], "line %d", i)
	}
}

func writeFixtures(t *testing.T) (string, []Target) {
	t.Helper()
	dir := t.TempDir()
	files := []struct {
		name    string
		kind    Kind
		content string
	}{
		{"__init__.py", KindPackageInit, initFixture},
		{"CITATION.cff", KindCitation, citationFixture},
		{"pyproject.toml", KindManifest, manifestFixture},
		{"README.md", KindReadme, readmeFixture},
	}
	var targets []Target
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		require.NoError(t, os.WriteFile(path, []byte(f.content), 0o640))
		targets = append(targets, Target{Path: path, Kind: f.kind})
	}
	return dir, targets
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestPlanAndApplyEndToEnd(t *testing.T) {
	dir, targets := writeFixtures(t)
	svc := NewService(quietLogger(), true)

	plan, err := svc.Plan(targets, mustParse(t, "3.1.4"), mustParse(t, "3.1.5"))
	require.NoError(t, err)

	// planning never writes
	assert.Equal(t, initFixture, readFile(t, filepath.Join(dir, "__init__.py")))

	changes, err := svc.Apply(plan)
	require.NoError(t, err)
	require.Len(t, changes, 4)
	for _, c := range changes {
		assert.True(t, c.Changed, c.Path)
		assert.Greater(t, c.MatchedLines, 0, c.Path)
	}

	initOut := readFile(t, filepath.Join(dir, "__init__.py"))
	assert.Contains(t, initOut, `__version__ = "3.1.5"`)
	assert.Contains(t, initOut, `"3.1.4-compat"`)

	citationOut := readFile(t, filepath.Join(dir, "CITATION.cff"))
	assert.Contains(t, citationOut, "\nversion: 3.1.5\n")
	assert.Contains(t, citationOut, "  - version: 3.1.4\n")

	manifestOut := readFile(t, filepath.Join(dir, "pyproject.toml"))
	assert.Contains(t, manifestOut, "version = \"3.1.5\"")
	assert.Contains(t, manifestOut, "fuzzyset==3.1.4")

	readmeOut := readFile(t, filepath.Join(dir, "README.md"))
	assert.Contains(t, readmeOut, "Version 3.1.5 of the dictionary.")
	assert.Contains(t, readmeOut, "pip 3.1.4 or later")

	info, err := os.Stat(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4, "no temporary files left behind")
}

func TestPlanNonStrictToleratesMissingVersion(t *testing.T) {
	dir, targets := writeFixtures(t)
	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# No version here\n"), 0o644))

	svc := NewService(quietLogger(), false)
	plan, err := svc.Plan(targets, mustParse(t, "3.1.4"), mustParse(t, "3.1.5"))
	require.NoError(t, err)

	changes, err := svc.Apply(plan)
	require.NoError(t, err)
	for _, c := range changes {
		if c.Path == readme {
			assert.False(t, c.Changed)
			assert.Equal(t, 0, c.MatchedLines)
		}
	}
	assert.Equal(t, "# No version here\n", readFile(t, readme))
}

func TestPlanStrictFailsWithoutWriting(t *testing.T) {
	dir, targets := writeFixtures(t)
	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# No version here\n"), 0o644))

	svc := NewService(quietLogger(), true)
	plan, err := svc.Plan(targets, mustParse(t, "3.1.4"), mustParse(t, "3.1.5"))
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Nil(t, plan)
	assert.Equal(t, initFixture, readFile(t, filepath.Join(dir, "__init__.py")))
}

func TestPlanMissingFile(t *testing.T) {
	svc := NewService(quietLogger(), false)
	_, err := svc.Plan([]Target{{Path: filepath.Join(t.TempDir(), "gone.cff"), Kind: KindCitation}},
		mustParse(t, "1.0.0"), mustParse(t, "1.0.1"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyTwiceIsNoOp(t *testing.T) {
	dir, targets := writeFixtures(t)
	svc := NewService(quietLogger(), false)
	old, next := mustParse(t, "3.1.4"), mustParse(t, "3.1.5")

	plan, err := svc.Plan(targets, old, next)
	require.NoError(t, err)
	_, err = svc.Apply(plan)
	require.NoError(t, err)
	first := readFile(t, filepath.Join(dir, "CITATION.cff"))

	plan, err = svc.Plan(targets, old, next)
	require.NoError(t, err)
	changes, err := svc.Apply(plan)
	require.NoError(t, err)
	for _, c := range changes {
		assert.False(t, c.Changed, c.Path)
	}
	assert.Equal(t, first, readFile(t, filepath.Join(dir, "CITATION.cff")))
}
