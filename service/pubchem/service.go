// Package pubchem downloads the PubChem compound extras used to attach SMILES to MeSH names.
package pubchem

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/drugner/drugdict/service/fetch"
	"github.com/klauspost/compress/gzip"
)

// NewService creates a PubChem download service.
func NewService(fetcher fetch.Service, logger *slog.Logger, opts Options) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.DestDir == "" {
		opts.DestDir = "."
	}
	if len(opts.Files) == 0 {
		opts.Files = DefaultFiles
	}
	return &service{fetcher: fetcher, logger: logger, opts: opts}
}

// Download fetches every configured file and decompresses the gzipped ones next
// to the archives. It returns the paths of the usable, uncompressed files.
func (s *service) Download(ctx context.Context) ([]string, error) {
	base := strings.TrimSuffix(s.opts.BaseURL, "/") + "/"

	var ready []string
	for _, name := range s.opts.Files {
		dest := filepath.Join(s.opts.DestDir, name)
		if _, err := s.fetcher.Download(ctx, base+name, dest); err != nil {
			return ready, err
		}

		if !strings.HasSuffix(name, ".gz") {
			ready = append(ready, dest)
			continue
		}

		plain := strings.TrimSuffix(dest, ".gz")
		s.logger.Info("Unzipping", "file", dest)
		if err := Gunzip(dest, plain); err != nil {
			return ready, fmt.Errorf("failed to unzip %s: %w", dest, err)
		}
		ready = append(ready, plain)
	}
	return ready, nil
}

// Gunzip decompresses src into dst. dst only appears once the whole stream
// decoded; a corrupt archive leaves any previous dst in place.
func Gunzip(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return err
	}
	defer zr.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.part")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, zr); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
