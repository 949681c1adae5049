package drugbank

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"github.com/drugner/drugdict/service/fetch"
)

var (
	// ErrReleaseURLNotFound is returned when the releases page carries no vocabulary link.
	ErrReleaseURLNotFound = errors.New("drugbank vocabulary download url not found")
	// ErrUnsafePath is returned for archive entries that would land outside the destination.
	ErrUnsafePath = errors.New("archive entry escapes destination")
)

// DefaultReleasesURL is the page listing the latest open data releases.
const DefaultReleasesURL = "https://go.drugbank.com/releases/latest#open-data"

// ReleaseLocator finds the vocabulary download link on a releases page.
type ReleaseLocator interface {
	Locate(page []byte) (string, error)
}

// RegexLocator returns the first match of Pattern.
type RegexLocator struct {
	Pattern *regexp.Regexp
}

// Options configures one DrugBank acquisition.
type Options struct {
	ReleasesURL string
	ArchivePath string
	DestDir     string
}

// Result describes a completed acquisition.
type Result struct {
	URL         string
	ArchiveSize int64
	Extracted   []string
}

type service struct {
	fetcher fetch.Service
	locator ReleaseLocator
	logger  *slog.Logger
	opts    Options
}

// Service is the interface for downloading and unpacking the DrugBank vocabulary.
type Service interface {
	Acquire(ctx context.Context) (Result, error)
}
