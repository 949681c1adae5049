package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/acquisition"
	"github.com/drugner/drugdict/service/config"
	"github.com/drugner/drugdict/service/drugbank"
	"github.com/drugner/drugdict/service/fetch"
	"github.com/drugner/drugdict/service/git"
	"github.com/drugner/drugdict/service/orchestrator"
	"github.com/drugner/drugdict/service/output"
	"github.com/drugner/drugdict/service/pubchem"
	"github.com/drugner/drugdict/service/release"
	"github.com/drugner/drugdict/service/rewrite"
	"github.com/drugner/drugdict/service/runner"
	"github.com/drugner/drugdict/service/storage"
	"github.com/drugner/drugdict/service/verify"
)

// buildServices wires every workflow dependency from the loaded configuration.
func buildServices(cfg *config.Config, flags model.Flags, logger *slog.Logger, storageService storage.Service) orchestrator.Services {
	runnerService := runner.NewService(logger, childStdout(flags), os.Stderr)
	fetchService := fetch.NewService(logger, fetch.Options{
		Timeout:   cfg.HTTPTimeout,
		RateLimit: cfg.DownloadRateLimit,
		UserAgent: cfg.UserAgent,
	})
	harvestDir := cfg.Path(cfg.HarvestDir)

	drugbankService := drugbank.NewService(fetchService, drugbank.NewRegexLocator(), logger, drugbank.Options{
		ReleasesURL: cfg.DrugBankReleasesURL,
		ArchivePath: cfg.Path(cfg.ArchivePath),
		DestDir:     harvestDir,
	})
	pubchemService := pubchem.NewService(fetchService, logger, pubchem.Options{
		BaseURL: cfg.PubChemBaseURL,
		DestDir: harvestDir,
	})
	acquisitionService := acquisition.NewService(logger, acquisition.Options{
		HarvestDir: harvestDir,
		DataDir:    cfg.Path(cfg.DataDir),
		Skip:       flags.Skip,
	})

	releaseService := release.NewService(
		rewrite.NewService(logger, cfg.StrictRewrite),
		verify.NewService(),
		git.NewService(runnerService, cfg.RepoRoot),
		logger,
	)

	return orchestrator.Services{
		RunnerService:      runnerService,
		DrugBankService:    drugbankService,
		PubChemService:     pubchemService,
		AcquisitionService: acquisitionService,
		ReleaseService:     releaseService,
		OutputService:      output.NewService(flags.Output),
		StorageService:     storageService,
	}
}

// childStdout keeps external tool output off stdout when stdout carries JSON.
func childStdout(flags model.Flags) io.Writer {
	if flags.Output == "json" {
		return os.Stderr
	}
	return os.Stdout
}
