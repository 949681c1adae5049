package flag

import (
	"fmt"
	"strings"

	"github.com/drugner/drugdict/model"
	"github.com/spf13/pflag"
)

// NewService creates a new flag service.
func NewService() Service {
	return &service{}
}

// GetParsedFlags parses and returns the command-line flags.
// The first positional argument is the subcommand; the rest are its arguments.
func (s *service) GetParsedFlags() (model.Flags, error) {
	version := pflag.BoolP("version", "v", false, "Show version information")
	envFile := pflag.String("env-file", ".env", "Path to a .env file (ignored when missing)")
	logLevel := pflag.String("log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")
	output := pflag.StringP("output", "o", "table", "Output format (table or json)")
	store := pflag.Bool("store", false, "Record the run in the local SQLite history")
	dbPath := pflag.String("db-path", "", "Custom SQLite database path (default ~/.drugdict/history.db)")
	strict := pflag.Bool("strict", false, "Fail when a version file has no matching line")
	dryRun := pflag.Bool("dry-run", false, "Plan and verify the release without writing or publishing")
	noPush := pflag.Bool("no-push", false, "Commit the release but do not push it")
	skip := pflag.String("skip", "", "Comma-separated fetch steps to skip (mesh, drugbank, pubchem, combine, copy)")
	limit := pflag.Int("limit", 20, "Number of history rows to list")
	kind := pflag.String("kind", "", "History kind filter (release or fetch)")
	olderThan := pflag.Int("older-than", 30, "Purge history older than N days")

	pflag.Parse()

	if *output != "table" && *output != "json" {
		return model.Flags{}, fmt.Errorf("unsupported output format %q (want table or json)", *output)
	}
	if *kind != "" && *kind != "release" && *kind != "fetch" {
		return model.Flags{}, fmt.Errorf("unsupported history kind %q (want release or fetch)", *kind)
	}

	var parsedSkip []string
	if *skip != "" {
		for _, step := range strings.Split(*skip, ",") {
			step = strings.TrimSpace(step)
			if step != "" {
				parsedSkip = append(parsedSkip, step)
			}
		}
	}

	flags := model.Flags{
		Version:   *version,
		EnvFile:   *envFile,
		LogLevel:  *logLevel,
		Output:    *output,
		Store:     *store,
		DBPath:    *dbPath,
		Strict:    *strict,
		DryRun:    *dryRun,
		NoPush:    *noPush,
		Skip:      parsedSkip,
		Limit:     *limit,
		Kind:      *kind,
		OlderThan: *olderThan,
	}

	if args := pflag.Args(); len(args) > 0 {
		flags.Command = args[0]
		flags.Args = args[1:]
	}

	return flags, nil
}
