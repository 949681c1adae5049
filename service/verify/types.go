package verify

import (
	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/rewrite"
)

type service struct{}

// Service is the interface for checking planned rewrites before they are written.
type Service interface {
	Verify(plan *rewrite.Plan) []model.VerifyResult
}

type citation struct {
	Version any `yaml:"version"`
}

type manifest struct {
	Project struct {
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}
