package model

import "time"

// Step status values.
const (
	StepOK      = "ok"
	StepFailed  = "failed"
	StepSkipped = "skipped"
)

// StepResult records how one acquisition step ended.
type StepResult struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
}

// FetchSummary is the result of one vocabulary acquisition run.
type FetchSummary struct {
	RunID       string        `json:"run_id"`
	Steps       []StepResult  `json:"steps"`
	DrugBankURL string        `json:"drugbank_url,omitempty"`
	Copied      []string      `json:"copied,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration_ns"`
}

// Failed reports whether any step failed.
func (s FetchSummary) Failed() bool {
	for _, st := range s.Steps {
		if st.Status == StepFailed {
			return true
		}
	}
	return false
}
