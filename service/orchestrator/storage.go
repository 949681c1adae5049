package orchestrator

import (
	"context"

	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/storage"
)

func runStatus(err error) (string, string) {
	if err != nil {
		return "failed", err.Error()
	}
	return "ok", ""
}

func (s *service) persistReleaseIfEnabled(ctx context.Context, flags model.Flags, summary model.ReleaseSummary, runErr error) {
	if s.storageService == nil || !flags.Store || summary.NewVersion == "" {
		return
	}

	changed := 0
	for _, f := range summary.Files {
		if f.Changed {
			changed++
		}
	}
	status, errText := runStatus(runErr)

	id, err := s.storageService.SaveRelease(ctx, storage.SaveReleaseInput{
		RunUUID:      summary.RunID,
		StartedAt:    summary.StartedAt,
		DurationMS:   summary.Duration.Milliseconds(),
		OldVersion:   summary.OldVersion,
		NewVersion:   summary.NewVersion,
		CommitHash:   summary.CommitHash,
		Pushed:       summary.Pushed,
		DryRun:       summary.DryRun,
		FilesChanged: changed,
		Status:       status,
		Error:        errText,
	})
	if err != nil {
		s.logger.Warn("Failed to record release run", "error", err)
		return
	}
	s.logger.Debug("Recorded release run", "id", id, "run", summary.RunID)
}

func (s *service) persistFetchIfEnabled(ctx context.Context, flags model.Flags, summary model.FetchSummary, runErr error) {
	if s.storageService == nil || !flags.Store {
		return
	}

	okSteps, failedSteps := 0, 0
	for _, st := range summary.Steps {
		switch st.Status {
		case model.StepOK:
			okSteps++
		case model.StepFailed:
			failedSteps++
		}
	}
	status, errText := runStatus(runErr)

	id, err := s.storageService.SaveFetch(ctx, storage.SaveFetchInput{
		RunUUID:     summary.RunID,
		StartedAt:   summary.StartedAt,
		DurationMS:  summary.Duration.Milliseconds(),
		DrugBankURL: summary.DrugBankURL,
		StepsOK:     okSteps,
		StepsFailed: failedSteps,
		Status:      status,
		Error:       errText,
	})
	if err != nil {
		s.logger.Warn("Failed to record fetch run", "error", err)
		return
	}
	s.logger.Debug("Recorded fetch run", "id", id, "run", summary.RunID)
}
