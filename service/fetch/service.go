// Package fetch downloads reference vocabularies over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/juju/ratelimit"
)

const maxPageSize = 16 << 20

// NewService creates an HTTP fetch service.
func NewService(logger *slog.Logger, opts Options) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Minute
	}
	return &service{
		client: &http.Client{Timeout: opts.Timeout},
		logger: logger,
		opts:   opts,
	}
}

func (s *service) open(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url %s: %w", url, err)
	}
	if s.opts.UserAgent != "" {
		req.Header.Set("User-Agent", s.opts.UserAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("failed to download %s: unexpected status %s", url, resp.Status)
	}
	return resp, nil
}

func (s *service) body(resp *http.Response) io.Reader {
	if s.opts.RateLimit <= 0 {
		return resp.Body
	}
	bucket := ratelimit.NewBucketWithRate(float64(s.opts.RateLimit), s.opts.RateLimit)
	return ratelimit.Reader(resp.Body, bucket)
}

func (s *service) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := s.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.logger.Warn("Failed to close response body", "error", err)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(s.body(resp), maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}
	return data, nil
}

func (s *service) Download(ctx context.Context, url, dest string) (int64, error) {
	s.logger.Info("Downloading", "url", url, "dest", dest)
	start := time.Now()

	resp, err := s.open(ctx, url)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.logger.Warn("Failed to close response body", "error", err)
		}
	}()

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return 0, fmt.Errorf("failed to create directory for %s: %w", dest, err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %w", dest, err)
	}

	n, copyErr := io.Copy(out, s.body(resp))
	closeErr := out.Close()
	if copyErr != nil {
		return n, fmt.Errorf("failed to write %s: %w", dest, copyErr)
	}
	if closeErr != nil {
		return n, fmt.Errorf("failed to close %s: %w", dest, closeErr)
	}

	s.logger.Info("Downloaded", "url", url, "dest", dest,
		"size", humanize.Bytes(uint64(n)), "duration", time.Since(start).Round(time.Millisecond).String())
	return n, nil
}
