package acquisition

import (
	"context"
	"log/slog"

	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/runner"
)

// Vocabulary outputs copied into the library once every step has run.
const (
	DrugBankVocabularyCSV = "drugbank vocabulary.csv"
	MeshDictionaryCSV     = "drugs_dictionary_mesh.csv"
)

// Step names, in run order.
const (
	StepMesh     = "mesh"
	StepDrugBank = "drugbank"
	StepPubChem  = "pubchem"
	StepCombine  = "combine"
	StepCopy     = "copy"
)

// StepNames lists every step a fetch run can contain.
var StepNames = []string{StepMesh, StepDrugBank, StepPubChem, StepCombine, StepCopy}

// DefaultOutputs lists the files relocated into the library data directory.
var DefaultOutputs = []string{DrugBankVocabularyCSV, MeshDictionaryCSV}

// Step is one data preparation stage.
type Step interface {
	Name() string
	Run(ctx context.Context) error
}

type commandStep struct {
	name   string
	runner runner.Service
	cmd    runner.Command
}

type funcStep struct {
	name string
	fn   func(ctx context.Context) error
}

// Options configures an acquisition run.
type Options struct {
	HarvestDir string
	DataDir    string
	Outputs    []string
	Skip       []string
}

type service struct {
	logger *slog.Logger
	opts   Options
}

// Service is the interface for the fetch-and-build pipeline.
type Service interface {
	Run(ctx context.Context, steps []Step) (model.FetchSummary, error)
}
