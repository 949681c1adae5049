// Package orchestrator drives the fetch, release and history workflows.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/acquisition"
	"github.com/drugner/drugdict/service/config"
	"github.com/drugner/drugdict/service/release"
	"github.com/drugner/drugdict/service/rewrite"
	"github.com/drugner/drugdict/service/runner"
	"github.com/drugner/drugdict/service/storage"
	"github.com/drugner/drugdict/shared/spinner"
)

// NewService creates a new orchestrator service.
func NewService(cfg *config.Config, logger *slog.Logger, deps Services, versionInfo model.VersionInfo) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		cfg:                cfg,
		logger:             logger,
		stdout:             os.Stdout,
		runnerService:      deps.RunnerService,
		drugbankService:    deps.DrugBankService,
		pubchemService:     deps.PubChemService,
		acquisitionService: deps.AcquisitionService,
		releaseService:     deps.ReleaseService,
		outputService:      deps.OutputService,
		storageService:     deps.StorageService,
		versionInfo:        versionInfo,
	}
}

func (s *service) Orchestrate(flags model.Flags) error {
	if flags.Version || flags.Command == "version" {
		return s.versionWorkflow()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch flags.Command {
	case "fetch":
		return s.fetchWorkflow(ctx, flags)
	case "release":
		return s.releaseWorkflow(ctx, flags)
	case "history":
		return s.historyWorkflow(ctx, flags)
	case "":
		return fmt.Errorf("usage: drugdict <fetch|release|history|version> [flags]")
	default:
		return fmt.Errorf("unsupported command: %s", flags.Command)
	}
}

func (s *service) versionWorkflow() error {
	s.outputService.StopSpinner()

	fmt.Fprintf(s.stdout, "drugdict version %s\n", s.versionInfo.Version)
	fmt.Fprintf(s.stdout, "commit: %s\n", s.versionInfo.Commit)
	fmt.Fprintf(s.stdout, "built at: %s\n", s.versionInfo.Date)

	return nil
}

func (s *service) fetchWorkflow(ctx context.Context, flags model.Flags) error {
	for _, name := range flags.Skip {
		if !slices.Contains(acquisition.StepNames, name) {
			return fmt.Errorf("unknown step %q in --skip (want one of %s)", name, strings.Join(acquisition.StepNames, ", "))
		}
	}

	var drugbankURL string
	steps, err := s.fetchSteps(&drugbankURL)
	if err != nil {
		return err
	}

	summary, runErr := s.acquisitionService.Run(ctx, steps)
	summary.DrugBankURL = drugbankURL

	s.persistFetchIfEnabled(ctx, flags, summary, runErr)

	if err := s.outputService.RenderFetch(summary); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("fetch failed: %w", runErr)
	}
	return nil
}

// fetchSteps builds the ordered acquisition steps. The located DrugBank
// release link is written to drugbankURL when that step runs.
func (s *service) fetchSteps(drugbankURL *string) ([]acquisition.Step, error) {
	harvestDir := s.cfg.Path(s.cfg.HarvestDir)

	mesh, err := runner.ParseCommandLine(s.cfg.MeshCommand, harvestDir)
	if err != nil {
		return nil, fmt.Errorf("invalid MESH_COMMAND: %w", err)
	}
	combine, err := runner.ParseCommandLine(s.cfg.CombineCommand, harvestDir)
	if err != nil {
		return nil, fmt.Errorf("invalid COMBINE_COMMAND: %w", err)
	}

	steps := []acquisition.Step{
		acquisition.CommandStep(acquisition.StepMesh, s.runnerService, mesh),
		acquisition.FuncStep(acquisition.StepDrugBank, func(ctx context.Context) error {
			spinner.StartSpinner("Downloading DrugBank vocabulary...")
			defer spinner.StopSpinner()

			res, err := s.drugbankService.Acquire(ctx)
			*drugbankURL = res.URL
			return err
		}),
	}

	if s.cfg.PubChemCommand != "" {
		pubchem, err := runner.ParseCommandLine(s.cfg.PubChemCommand, harvestDir)
		if err != nil {
			return nil, fmt.Errorf("invalid PUBCHEM_COMMAND: %w", err)
		}
		steps = append(steps, acquisition.CommandStep(acquisition.StepPubChem, s.runnerService, pubchem))
	} else {
		steps = append(steps, acquisition.FuncStep(acquisition.StepPubChem, func(ctx context.Context) error {
			spinner.StartSpinner("Downloading PubChem extras...")
			defer spinner.StopSpinner()

			_, err := s.pubchemService.Download(ctx)
			return err
		}))
	}

	return append(steps, acquisition.CommandStep(acquisition.StepCombine, s.runnerService, combine)), nil
}

func (s *service) releaseWorkflow(ctx context.Context, flags model.Flags) error {
	summary, runErr := s.releaseService.Release(ctx, s.releaseOptions(flags))

	s.persistReleaseIfEnabled(ctx, flags, summary, runErr)

	if summary.NewVersion != "" {
		if err := s.outputService.RenderRelease(summary); err != nil {
			return err
		}
	}
	if runErr != nil {
		return fmt.Errorf("release failed: %w", runErr)
	}
	return nil
}

func (s *service) releaseOptions(flags model.Flags) release.Options {
	dataDir := s.cfg.Path(s.cfg.DataDir)
	extra := make([]string, 0, len(acquisition.DefaultOutputs))
	for _, name := range acquisition.DefaultOutputs {
		extra = append(extra, filepath.Join(dataDir, name))
	}

	return release.Options{
		VersionFile:   s.cfg.Path(s.cfg.VersionFile),
		Targets:       ReleaseTargets(s.cfg),
		Extra:         extra,
		CommitMessage: s.cfg.CommitMessage,
		Remote:        s.cfg.GitRemote,
		Branch:        s.cfg.GitBranch,
		Strict:        s.cfg.StrictRewrite,
		DryRun:        flags.DryRun,
		NoPush:        flags.NoPush,
	}
}

// ReleaseTargets lists the four version-bearing files of the repository.
func ReleaseTargets(cfg *config.Config) []rewrite.Target {
	return []rewrite.Target{
		{Path: cfg.Path(cfg.VersionFile), Kind: rewrite.KindPackageInit},
		{Path: cfg.Path(cfg.CitationFile), Kind: rewrite.KindCitation},
		{Path: cfg.Path(cfg.ManifestFile), Kind: rewrite.KindManifest},
		{Path: cfg.Path(cfg.ReadmeFile), Kind: rewrite.KindReadme},
	}
}

func (s *service) historyWorkflow(ctx context.Context, flags model.Flags) error {
	if s.storageService == nil {
		return fmt.Errorf("history requires initialized storage")
	}

	sub := "list"
	if len(flags.Args) > 0 {
		sub = flags.Args[0]
	}

	switch sub {
	case "list":
		var releases []storage.ReleaseRecord
		var fetches []storage.FetchRecord
		var err error
		if flags.Kind != "fetch" {
			if releases, err = s.storageService.GetRecentReleases(ctx, flags.Limit); err != nil {
				return fmt.Errorf("failed to list releases: %w", err)
			}
		}
		if flags.Kind != "release" {
			if fetches, err = s.storageService.GetRecentFetches(ctx, flags.Limit); err != nil {
				return fmt.Errorf("failed to list fetches: %w", err)
			}
		}
		return s.outputService.RenderHistory(releases, fetches)
	case "purge":
		count, err := s.storageService.PurgeOlderThan(ctx, flags.OlderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.stdout, "Purged %d runs\n", count)
		return nil
	case "vacuum":
		return s.storageService.Vacuum(ctx)
	default:
		return fmt.Errorf("unsupported history command: %s", sub)
	}
}
