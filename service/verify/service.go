// Package verify parses the rewritten version files and confirms they declare the new version.
package verify

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/rewrite"
	"github.com/drugner/drugdict/shared/semver"
	"gopkg.in/yaml.v3"
)

// NewService creates a new verify service.
func NewService() Service {
	return &service{}
}

func (s *service) Verify(plan *rewrite.Plan) []model.VerifyResult {
	want := plan.New.String()
	results := make([]model.VerifyResult, 0, len(plan.Files))

	for _, f := range plan.Files {
		res := model.VerifyResult{Path: f.Path, Kind: string(f.Kind), OK: true}
		if got, err := declaredVersion(f.Kind, f.Updated, want); err != nil {
			res.OK = false
			res.Message = err.Error()
		} else if got != want {
			res.OK = false
			res.Message = fmt.Sprintf("declares %q, want %q", got, want)
		}
		results = append(results, res)
	}

	return results
}

// Failed returns the results that did not verify.
func Failed(results []model.VerifyResult) []model.VerifyResult {
	var failed []model.VerifyResult
	for _, r := range results {
		if !r.OK {
			failed = append(failed, r)
		}
	}
	return failed
}

func declaredVersion(kind rewrite.Kind, content []byte, want string) (string, error) {
	switch kind {
	case rewrite.KindPackageInit:
		return semver.ExtractVersion(content)
	case rewrite.KindCitation:
		return citationVersion(content)
	case rewrite.KindManifest:
		return manifestVersion(content)
	case rewrite.KindReadme:
		if bytes.Contains(content, []byte("Version "+want)) {
			return want, nil
		}
		return "", fmt.Errorf("no %q phrase", "Version "+want)
	default:
		return "", fmt.Errorf("unknown file kind %q", kind)
	}
}

func citationVersion(content []byte) (string, error) {
	var c citation
	if err := yaml.Unmarshal(content, &c); err != nil {
		return "", fmt.Errorf("invalid citation metadata: %w", err)
	}
	if c.Version == nil {
		return "", fmt.Errorf("citation metadata has no version key")
	}
	return fmt.Sprint(c.Version), nil
}

func manifestVersion(content []byte) (string, error) {
	var m manifest
	if _, err := toml.Decode(string(content), &m); err != nil {
		return "", fmt.Errorf("invalid project manifest: %w", err)
	}
	if m.Project.Version != "" {
		return m.Project.Version, nil
	}
	if m.Tool.Poetry.Version != "" {
		return m.Tool.Poetry.Version, nil
	}
	return "", fmt.Errorf("project manifest has no project.version or tool.poetry.version")
}
