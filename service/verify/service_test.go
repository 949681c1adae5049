package verify

import (
	"testing"

	"github.com/drugner/drugdict/service/rewrite"
	"github.com/drugner/drugdict/shared/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planFor(t *testing.T, kind rewrite.Kind, updated string) *rewrite.Plan {
	t.Helper()
	next, err := semver.Parse("3.1.5")
	require.NoError(t, err)
	return &rewrite.Plan{
		New: next,
		Files: []rewrite.FilePlan{{
			Target:  rewrite.Target{Path: "file", Kind: kind},
			Updated: []byte(updated),
		}},
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		kind    rewrite.Kind
		content string
		wantOK  bool
	}{
		{name: "init ok", kind: rewrite.KindPackageInit, content: "__version__ = \"3.1.5\"\n", wantOK: true},
		{name: "init stale", kind: rewrite.KindPackageInit, content: "__version__ = \"3.1.4\"\n", wantOK: false},
		{name: "init missing", kind: rewrite.KindPackageInit, content: "x = 1\n", wantOK: false},
		{name: "citation ok", kind: rewrite.KindCitation, content: "cff-version: 1.2.0\nversion: 3.1.5\n", wantOK: true},
		{name: "citation quoted", kind: rewrite.KindCitation, content: "version: \"3.1.5\"\n", wantOK: true},
		{name: "citation stale", kind: rewrite.KindCitation, content: "version: 3.1.4\n", wantOK: false},
		{name: "citation no key", kind: rewrite.KindCitation, content: "title: x\n", wantOK: false},
		{name: "citation broken yaml", kind: rewrite.KindCitation, content: "version: [\n", wantOK: false},
		{name: "manifest project", kind: rewrite.KindManifest, content: "[project]\nname = \"x\"\nversion = \"3.1.5\"\n", wantOK: true},
		{name: "manifest poetry", kind: rewrite.KindManifest, content: "[tool.poetry]\nversion = \"3.1.5\"\n", wantOK: true},
		{name: "manifest stale", kind: rewrite.KindManifest, content: "[project]\nversion = \"3.1.4\"\n", wantOK: false},
		{name: "manifest dotted keys", kind: rewrite.KindManifest, content: "[project]\nversion = \"3.1.5\"\nurls.Homepage = \"https://example.org\"\n", wantOK: true},
		{name: "manifest mixed array", kind: rewrite.KindManifest, content: "[project]\nversion = \"3.1.5\"\n\n[tool.x]\nmixed = [1, \"a\"]\n", wantOK: true},
		{name: "manifest broken toml", kind: rewrite.KindManifest, content: "[project\n", wantOK: false},
		{name: "readme ok", kind: rewrite.KindReadme, content: "Version 3.1.5\n", wantOK: true},
		{name: "readme stale", kind: rewrite.KindReadme, content: "Version 3.1.4\n", wantOK: false},
	}

	svc := NewService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := svc.Verify(planFor(t, tt.kind, tt.content))
			require.Len(t, results, 1)
			assert.Equal(t, tt.wantOK, results[0].OK, results[0].Message)
			if !tt.wantOK {
				assert.NotEmpty(t, results[0].Message)
				assert.Len(t, Failed(results), 1)
			} else {
				assert.Empty(t, Failed(results))
			}
		})
	}
}

func TestManifestVersionModernPyproject(t *testing.T) {
	content := `[build-system]
requires = ["setuptools>=61", "wheel"]
build-backend = "setuptools.build_meta"

[project]
name = "drug-named-entity-recognition"
version = "3.1.5"
authors = [{ name = "Maintainer", email = "maintainer@example.org" }]
urls.Homepage = "https://example.org/drug-ner"
urls."Bug Tracker" = "https://example.org/drug-ner/issues"

[tool.setuptools.package-data]
drug_named_entity_recognition = ["data/*.csv", "data/*.pkl.bz2"]
`
	got, err := manifestVersion([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, "3.1.5", got)
}
