// Package storage keeps a local SQLite history of fetch and release runs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const defaultDBPath = "~/.drugdict/history.db"

// NewService creates a SQLite-backed storage service.
func NewService(dbPath string) (Service, error) {
	resolved, err := resolvePath(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaV1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &service{db: db, dbPath: resolved}, nil
}

type service struct {
	db     *sql.DB
	dbPath string
}

func resolvePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		p = defaultDBPath
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}

func normalise(runUUID string, startedAt time.Time) (string, string) {
	if runUUID == "" {
		runUUID = uuid.NewString()
	}
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	return runUUID, startedAt.UTC().Format(time.RFC3339)
}

func parseTimestamp(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	return t, nil
}

func (s *service) SaveRelease(ctx context.Context, input SaveReleaseInput) (int64, error) {
	if input.OldVersion == "" || input.NewVersion == "" {
		return 0, errors.New("old and new version are required")
	}
	if input.Status == "" {
		return 0, errors.New("status is required")
	}
	runUUID, startedAt := normalise(input.RunUUID, input.StartedAt)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO releases (
			run_uuid, started_at, duration_ms, old_version, new_version,
			commit_hash, pushed, dry_run, files_changed, status, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runUUID, startedAt, input.DurationMS, input.OldVersion, input.NewVersion,
		input.CommitHash, input.Pushed, input.DryRun, input.FilesChanged, input.Status, input.Error)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *service) SaveFetch(ctx context.Context, input SaveFetchInput) (int64, error) {
	if input.Status == "" {
		return 0, errors.New("status is required")
	}
	runUUID, startedAt := normalise(input.RunUUID, input.StartedAt)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO fetches (
			run_uuid, started_at, duration_ms, drugbank_url, steps_ok, steps_failed, status, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, runUUID, startedAt, input.DurationMS, input.DrugBankURL, input.StepsOK, input.StepsFailed,
		input.Status, input.Error)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *service) GetRecentReleases(ctx context.Context, limit int) ([]ReleaseRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT release_id, run_uuid, started_at, duration_ms, old_version, new_version,
			COALESCE(commit_hash, ''), pushed, dry_run, files_changed, status, COALESCE(error, '')
		FROM releases
		ORDER BY started_at DESC, release_id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ReleaseRecord{}
	for rows.Next() {
		var r ReleaseRecord
		var started string
		if err := rows.Scan(&r.ID, &r.RunUUID, &started, &r.DurationMS, &r.OldVersion, &r.NewVersion,
			&r.CommitHash, &r.Pushed, &r.DryRun, &r.FilesChanged, &r.Status, &r.Error); err != nil {
			return nil, err
		}
		if r.StartedAt, err = parseTimestamp(started); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *service) GetRecentFetches(ctx context.Context, limit int) ([]FetchRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT fetch_id, run_uuid, started_at, duration_ms, COALESCE(drugbank_url, ''),
			steps_ok, steps_failed, status, COALESCE(error, '')
		FROM fetches
		ORDER BY started_at DESC, fetch_id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []FetchRecord{}
	for rows.Next() {
		var r FetchRecord
		var started string
		if err := rows.Scan(&r.ID, &r.RunUUID, &started, &r.DurationMS, &r.DrugBankURL,
			&r.StepsOK, &r.StepsFailed, &r.Status, &r.Error); err != nil {
			return nil, err
		}
		if r.StartedAt, err = parseTimestamp(started); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *service) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

func (s *service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, errors.New("days must be > 0")
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)

	var total int64
	for _, table := range []string{"releases", "fetches"} {
		res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE started_at < ?", cutoff)
		if err != nil {
			return total, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (s *service) Close() error {
	return s.db.Close()
}
