package pubchem

import (
	"context"
	"log/slog"

	"github.com/drugner/drugdict/service/fetch"
)

// DefaultBaseURL is the PubChem compound extras directory.
const DefaultBaseURL = "https://ftp.ncbi.nlm.nih.gov/pubchem/Compound/Extras/"

// DefaultFiles are the extras needed to join MeSH names to SMILES and masses.
var DefaultFiles = []string{"CID-MeSH", "CID-SMILES.gz", "CID-Mass.gz"}

// Options configures the PubChem download.
type Options struct {
	BaseURL string
	DestDir string
	Files   []string
}

type service struct {
	fetcher fetch.Service
	logger  *slog.Logger
	opts    Options
}

// Service is the interface for the PubChem SMILES download.
type Service interface {
	Download(ctx context.Context) ([]string, error)
}
