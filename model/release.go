package model

import "time"

// FileChange describes the rewrite planned or applied to one version-bearing file.
type FileChange struct {
	Path         string `json:"path"`
	Kind         string `json:"kind"`
	MatchedLines int    `json:"matched_lines"`
	Changed      bool   `json:"changed"`
}

// VerifyResult is the outcome of checking that a rewritten file carries the new version.
type VerifyResult struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// ReleaseSummary is the result of one release run.
type ReleaseSummary struct {
	RunID        string         `json:"run_id"`
	OldVersion   string         `json:"old_version"`
	NewVersion   string         `json:"new_version"`
	Files        []FileChange   `json:"files"`
	Verification []VerifyResult `json:"verification"`
	Staged       []string       `json:"staged,omitempty"`
	CommitHash   string         `json:"commit_hash,omitempty"`
	Pushed       bool           `json:"pushed"`
	DryRun       bool           `json:"dry_run"`
	StartedAt    time.Time      `json:"started_at"`
	Duration     time.Duration  `json:"duration_ns"`
}
