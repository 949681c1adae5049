// Package acquisition runs the vocabulary preparation steps in order and relocates their outputs.
package acquisition

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/runner"
	"github.com/google/uuid"
	"github.com/moby/sys/atomicwriter"
)

// NewService creates an acquisition service.
func NewService(logger *slog.Logger, opts Options) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.Outputs) == 0 {
		opts.Outputs = DefaultOutputs
	}
	return &service{logger: logger, opts: opts}
}

// CommandStep wraps an external program as a step.
func CommandStep(name string, r runner.Service, cmd runner.Command) Step {
	return &commandStep{name: name, runner: r, cmd: cmd}
}

// FuncStep wraps an in-process function as a step.
func FuncStep(name string, fn func(ctx context.Context) error) Step {
	return &funcStep{name: name, fn: fn}
}

func (s *commandStep) Name() string { return s.name }

func (s *commandStep) Run(ctx context.Context) error {
	return s.runner.Run(ctx, s.cmd)
}

func (s *funcStep) Name() string { return s.name }

func (s *funcStep) Run(ctx context.Context) error {
	return s.fn(ctx)
}

// Run executes steps in order and stops at the first failure. Nothing already
// downloaded is rolled back. When every step succeeded the outputs are copied
// from the harvest directory into the data directory.
func (s *service) Run(ctx context.Context, steps []Step) (model.FetchSummary, error) {
	summary := model.FetchSummary{RunID: uuid.NewString(), StartedAt: time.Now()}

	all := append(slices.Clone(steps), FuncStep(StepCopy, func(ctx context.Context) error {
		copied, err := s.copyOutputs()
		summary.Copied = copied
		return err
	}))

	for _, step := range all {
		if slices.Contains(s.opts.Skip, step.Name()) {
			s.logger.Info("Skipping step", "step", step.Name())
			summary.Steps = append(summary.Steps, model.StepResult{Name: step.Name(), Status: model.StepSkipped})
			continue
		}
		if err := ctx.Err(); err != nil {
			return s.finish(summary), fmt.Errorf("step %s: %w", step.Name(), err)
		}

		s.logger.Info("Starting step", "step", step.Name())
		start := time.Now()
		err := step.Run(ctx)
		res := model.StepResult{Name: step.Name(), Status: model.StepOK, Duration: time.Since(start)}
		if err != nil {
			res.Status = model.StepFailed
			res.Error = err.Error()
			summary.Steps = append(summary.Steps, res)
			s.logger.Error("Step failed", "step", step.Name(), "error", err)
			return s.finish(summary), fmt.Errorf("step %s: %w", step.Name(), err)
		}
		summary.Steps = append(summary.Steps, res)
		s.logger.Info("Finished step", "step", step.Name(), "duration", res.Duration.Round(time.Millisecond).String())
	}

	return s.finish(summary), nil
}

func (s *service) finish(summary model.FetchSummary) model.FetchSummary {
	summary.Duration = time.Since(summary.StartedAt)
	return summary
}

func (s *service) copyOutputs() ([]string, error) {
	if err := os.MkdirAll(s.opts.DataDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	var copied []string
	for _, name := range s.opts.Outputs {
		src := filepath.Join(s.opts.HarvestDir, name)
		dst := filepath.Join(s.opts.DataDir, name)

		data, err := os.ReadFile(src)
		if err != nil {
			return copied, fmt.Errorf("failed to read %s: %w", src, err)
		}
		if err := atomicwriter.WriteFile(dst, data, 0o644); err != nil {
			return copied, fmt.Errorf("failed to write %s: %w", dst, err)
		}
		s.logger.Info("Copied vocabulary", "from", src, "to", dst)
		copied = append(copied, dst)
	}
	return copied, nil
}
