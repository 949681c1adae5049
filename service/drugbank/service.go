// Package drugbank downloads the open DrugBank vocabulary export.
package drugbank

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/drugner/drugdict/service/fetch"
	"github.com/klauspost/compress/zip"
)

var vocabularyLink = regexp.MustCompile(`\bhttps://go\.drugbank\.com/releases/[a-z0-9-]+/downloads/all-drugbank-vocabulary\b`)

// NewRegexLocator returns a locator for the go.drugbank.com vocabulary link shape.
func NewRegexLocator() *RegexLocator {
	return &RegexLocator{Pattern: vocabularyLink}
}

// Locate returns the first link on the page matching the pattern.
func (l *RegexLocator) Locate(page []byte) (string, error) {
	m := l.Pattern.Find(page)
	if m == nil {
		return "", ErrReleaseURLNotFound
	}
	return string(m), nil
}

// NewService creates a DrugBank acquisition service. A nil locator uses NewRegexLocator.
func NewService(fetcher fetch.Service, locator ReleaseLocator, logger *slog.Logger, opts Options) Service {
	if locator == nil {
		locator = NewRegexLocator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ReleasesURL == "" {
		opts.ReleasesURL = DefaultReleasesURL
	}
	if opts.ArchivePath == "" {
		opts.ArchivePath = filepath.Join(os.TempDir(), "drugbank-vocabulary.zip")
	}
	if opts.DestDir == "" {
		opts.DestDir = "."
	}
	return &service{fetcher: fetcher, locator: locator, logger: logger, opts: opts}
}

func (s *service) Acquire(ctx context.Context) (Result, error) {
	page, err := s.fetcher.Get(ctx, s.opts.ReleasesURL)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch releases page: %w", err)
	}

	url, err := s.locator.Locate(page)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", s.opts.ReleasesURL, err)
	}
	s.logger.Info("Found DrugBank vocabulary", "url", url)

	size, err := s.fetcher.Download(ctx, url, s.opts.ArchivePath)
	if err != nil {
		return Result{URL: url}, err
	}

	extracted, err := Extract(s.opts.ArchivePath, s.opts.DestDir)
	if err != nil {
		return Result{URL: url, ArchiveSize: size}, fmt.Errorf("failed to unzip %s: %w", s.opts.ArchivePath, err)
	}
	s.logger.Info("Unzipped DrugBank vocabulary", "archive", s.opts.ArchivePath, "dest", s.opts.DestDir, "files", len(extracted))

	if err := os.Remove(s.opts.ArchivePath); err != nil {
		s.logger.Warn("Failed to remove temporary archive", "path", s.opts.ArchivePath, "error", err)
	}

	return Result{URL: url, ArchiveSize: size, Extracted: extracted}, nil
}

// Extract unpacks every entry of the zip archive into destDir and returns the written file paths.
func Extract(archivePath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	root, err := filepath.Abs(destDir)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, f := range r.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return written, fmt.Errorf("%w: %s", ErrUnsafePath, f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o750); err != nil {
				return written, err
			}
			continue
		}

		if err := extractFile(f, target); err != nil {
			return written, fmt.Errorf("%s: %w", f.Name, err)
		}
		written = append(written, target)
	}
	return written, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
