package orchestrator

import (
	"io"
	"log/slog"

	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/acquisition"
	"github.com/drugner/drugdict/service/config"
	"github.com/drugner/drugdict/service/drugbank"
	"github.com/drugner/drugdict/service/output"
	"github.com/drugner/drugdict/service/pubchem"
	"github.com/drugner/drugdict/service/release"
	"github.com/drugner/drugdict/service/runner"
	"github.com/drugner/drugdict/service/storage"
)

// Services bundles the collaborators the workflows are built from.
// StorageService may be nil when history is disabled.
type Services struct {
	RunnerService      runner.Service
	DrugBankService    drugbank.Service
	PubChemService     pubchem.Service
	AcquisitionService acquisition.Service
	ReleaseService     release.Service
	OutputService      output.Service
	StorageService     storage.Service
}

type service struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer

	runnerService      runner.Service
	drugbankService    drugbank.Service
	pubchemService     pubchem.Service
	acquisitionService acquisition.Service
	releaseService     release.Service
	outputService      output.Service
	storageService     storage.Service
	versionInfo        model.VersionInfo
}

// Service is the interface for orchestrator service.
type Service interface {
	Orchestrate(flags model.Flags) error
}
