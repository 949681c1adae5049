package storage

import (
	"context"
	"time"
)

// Service defines persistence and history query operations.
type Service interface {
	SaveRelease(ctx context.Context, input SaveReleaseInput) (int64, error)
	SaveFetch(ctx context.Context, input SaveFetchInput) (int64, error)
	GetRecentReleases(ctx context.Context, limit int) ([]ReleaseRecord, error)
	GetRecentFetches(ctx context.Context, limit int) ([]FetchRecord, error)
	Vacuum(ctx context.Context) error
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	Close() error
}

// SaveReleaseInput is the payload saved for a finished release run.
type SaveReleaseInput struct {
	RunUUID      string
	StartedAt    time.Time
	DurationMS   int64
	OldVersion   string
	NewVersion   string
	CommitHash   string
	Pushed       bool
	DryRun       bool
	FilesChanged int
	Status       string
	Error        string
}

// SaveFetchInput is the payload saved for a finished acquisition run.
type SaveFetchInput struct {
	RunUUID     string
	StartedAt   time.Time
	DurationMS  int64
	DrugBankURL string
	StepsOK     int
	StepsFailed int
	Status      string
	Error       string
}

// ReleaseRecord is a stored release run.
type ReleaseRecord struct {
	ID           int64     `json:"id"`
	RunUUID      string    `json:"run_id"`
	StartedAt    time.Time `json:"started_at"`
	DurationMS   int64     `json:"duration_ms"`
	OldVersion   string    `json:"old_version"`
	NewVersion   string    `json:"new_version"`
	CommitHash   string    `json:"commit_hash,omitempty"`
	Pushed       bool      `json:"pushed"`
	DryRun       bool      `json:"dry_run"`
	FilesChanged int       `json:"files_changed"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
}

// FetchRecord is a stored acquisition run.
type FetchRecord struct {
	ID          int64     `json:"id"`
	RunUUID     string    `json:"run_id"`
	StartedAt   time.Time `json:"started_at"`
	DurationMS  int64     `json:"duration_ms"`
	DrugBankURL string    `json:"drugbank_url,omitempty"`
	StepsOK     int       `json:"steps_ok"`
	StepsFailed int       `json:"steps_failed"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
}
