// Package main is the entry point for the drugdict application.
package main

import (
	"fmt"
	"os"

	"github.com/drugner/drugdict/model"
	"github.com/drugner/drugdict/service/config"
	"github.com/drugner/drugdict/service/flag"
	"github.com/drugner/drugdict/service/orchestrator"
	"github.com/drugner/drugdict/service/output"
	"github.com/drugner/drugdict/service/storage"
	"github.com/drugner/drugdict/shared/banner"
	"github.com/drugner/drugdict/shared/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	versionInfo := model.VersionInfo{Version: version, Commit: commit, Date: date}

	if flags.Version || flags.Command == "version" {
		orchestratorService := orchestrator.NewService(nil, nil, orchestrator.Services{
			OutputService: output.NewService(flags.Output),
		}, versionInfo)
		return orchestratorService.Orchestrate(flags)
	}

	cfg, err := config.Load(flags.EnvFile)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(flags); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	logger := logging.Init(cfg.LogLevel)

	if wantsBanner(flags) {
		banner.DrawBannerTitle()
	}

	var storageService storage.Service
	if flags.Store || flags.Command == "history" {
		storageService, err = storage.NewService(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer storageService.Close()
	}

	orchestratorService := orchestrator.NewService(cfg, logger, buildServices(cfg, flags, logger, storageService), versionInfo)
	return orchestratorService.Orchestrate(flags)
}

func wantsBanner(flags model.Flags) bool {
	if flags.Output == "json" {
		return false
	}
	return flags.Command == "fetch" || flags.Command == "release"
}
