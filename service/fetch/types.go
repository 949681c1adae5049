package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Options configures the HTTP downloader.
type Options struct {
	Timeout   time.Duration
	RateLimit int64 // bytes per second, 0 disables throttling
	UserAgent string
}

type service struct {
	client *http.Client
	logger *slog.Logger
	opts   Options
}

// Service is the interface for fetching pages and files over HTTP.
type Service interface {
	Get(ctx context.Context, url string) ([]byte, error)
	Download(ctx context.Context, url, dest string) (int64, error)
}
