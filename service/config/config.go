// Package config loads drugdict settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/drugner/drugdict/model"
	"github.com/joho/godotenv"
)

const (
	defaultVersionFile   = "src/drug_named_entity_recognition/__init__.py"
	defaultDataDir       = "src/drug_named_entity_recognition/data"
	defaultHarvestDir    = "harvesting_data_from_source"
	defaultCommitMessage = "Bump version to {version}"
)

// Config holds all application configuration
type Config struct {
	RepoRoot     string
	VersionFile  string
	CitationFile string
	ManifestFile string
	ReadmeFile   string

	HarvestDir string
	DataDir    string

	MeshCommand    string
	PubChemCommand string
	CombineCommand string

	DrugBankReleasesURL string
	PubChemBaseURL      string
	ArchivePath         string
	HTTPTimeout         time.Duration
	DownloadRateLimit   int64 // bytes per second, 0 disables throttling
	UserAgent           string

	GitRemote     string
	GitBranch     string
	CommitMessage string

	StrictRewrite bool
	LogLevel      string
	HistoryDB     string
}

// Load reads envFile (when present) and then builds and validates the configuration.
// Variables already set in the process environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	timeout, err := getDurationEnvWithDefault("HTTP_TIMEOUT", 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	rate, err := getInt64EnvWithDefault("DOWNLOAD_RATE_LIMIT", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid DOWNLOAD_RATE_LIMIT: %w", err)
	}
	strict, err := getBoolEnvWithDefault("STRICT_REWRITE", false)
	if err != nil {
		return nil, fmt.Errorf("invalid STRICT_REWRITE: %w", err)
	}

	cfg := &Config{
		RepoRoot:            getEnvWithDefault("REPO_ROOT", "."),
		VersionFile:         getEnvWithDefault("VERSION_FILE", defaultVersionFile),
		CitationFile:        getEnvWithDefault("CITATION_FILE", "CITATION.cff"),
		ManifestFile:        getEnvWithDefault("MANIFEST_FILE", "pyproject.toml"),
		ReadmeFile:          getEnvWithDefault("README_FILE", "README.md"),
		HarvestDir:          getEnvWithDefault("HARVEST_DIR", defaultHarvestDir),
		DataDir:             getEnvWithDefault("DATA_DIR", defaultDataDir),
		MeshCommand:         getEnvWithDefault("MESH_COMMAND", "python3 download_mesh.py"),
		PubChemCommand:      os.Getenv("PUBCHEM_COMMAND"),
		CombineCommand:      getEnvWithDefault("COMBINE_COMMAND", "python3 combine_dictionaries.py"),
		DrugBankReleasesURL: getEnvWithDefault("DRUGBANK_RELEASES_URL", "https://go.drugbank.com/releases/latest#open-data"),
		PubChemBaseURL:      getEnvWithDefault("PUBCHEM_BASE_URL", "https://ftp.ncbi.nlm.nih.gov/pubchem/Compound/Extras/"),
		ArchivePath:         os.Getenv("ARCHIVE_PATH"),
		HTTPTimeout:         timeout,
		DownloadRateLimit:   rate,
		UserAgent:           getEnvWithDefault("USER_AGENT", "drugdict"),
		GitRemote:           os.Getenv("GIT_REMOTE"),
		GitBranch:           os.Getenv("GIT_BRANCH"),
		CommitMessage:       getEnvWithDefault("COMMIT_MESSAGE", defaultCommitMessage),
		StrictRewrite:       strict,
		LogLevel:            getEnvWithDefault("LOG_LEVEL", "info"),
		HistoryDB:           os.Getenv("HISTORY_DB"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	root, err := filepath.Abs(cfg.RepoRoot)
	if err != nil {
		return nil, fmt.Errorf("invalid REPO_ROOT: %w", err)
	}
	cfg.RepoRoot = root

	return cfg, nil
}

// ApplyFlags lets command line flags override the matching settings.
func (c *Config) ApplyFlags(flags model.Flags) error {
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.DBPath != "" {
		c.HistoryDB = flags.DBPath
	}
	if flags.Strict {
		c.StrictRewrite = true
	}
	return validateConfig(c)
}

// Path resolves a repository-relative setting against RepoRoot.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.RepoRoot, p)
}

// validateConfig validates all configuration values
func validateConfig(cfg *Config) error {
	required := []struct{ key, value string }{
		{"REPO_ROOT", cfg.RepoRoot},
		{"VERSION_FILE", cfg.VersionFile},
		{"CITATION_FILE", cfg.CitationFile},
		{"MANIFEST_FILE", cfg.ManifestFile},
		{"README_FILE", cfg.ReadmeFile},
		{"HARVEST_DIR", cfg.HarvestDir},
		{"DATA_DIR", cfg.DataDir},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s cannot be empty", r.key)
		}
	}

	if strings.TrimSpace(cfg.MeshCommand) == "" {
		return fmt.Errorf("MESH_COMMAND cannot be empty")
	}
	if strings.TrimSpace(cfg.CombineCommand) == "" {
		return fmt.Errorf("COMBINE_COMMAND cannot be empty")
	}

	if err := validateURL(cfg.DrugBankReleasesURL); err != nil {
		return fmt.Errorf("invalid DRUGBANK_RELEASES_URL: %w", err)
	}
	if err := validateURL(cfg.PubChemBaseURL); err != nil {
		return fmt.Errorf("invalid PUBCHEM_BASE_URL: %w", err)
	}

	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got: %s", cfg.HTTPTimeout)
	}
	if cfg.DownloadRateLimit < 0 {
		return fmt.Errorf("DOWNLOAD_RATE_LIMIT cannot be negative, got: %d", cfg.DownloadRateLimit)
	}

	if strings.TrimSpace(cfg.CommitMessage) == "" {
		return fmt.Errorf("COMMIT_MESSAGE cannot be empty")
	}
	if cfg.GitBranch != "" && cfg.GitRemote == "" {
		return fmt.Errorf("GIT_BRANCH requires GIT_REMOTE")
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	return nil
}

// validateLogLevel validates the LOG_LEVEL environment variable
func validateLogLevel(logLevel string) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	logLevel = strings.ToLower(logLevel)

	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64EnvWithDefault(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

func getBoolEnvWithDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.ParseBool(value)
}

func getDurationEnvWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(value)
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"REPO_ROOT",
		"VERSION_FILE",
		"CITATION_FILE",
		"MANIFEST_FILE",
		"README_FILE",
		"HARVEST_DIR",
		"DATA_DIR",
		"MESH_COMMAND",
		"PUBCHEM_COMMAND",
		"COMBINE_COMMAND",
		"DRUGBANK_RELEASES_URL",
		"PUBCHEM_BASE_URL",
		"ARCHIVE_PATH",
		"HTTP_TIMEOUT",
		"DOWNLOAD_RATE_LIMIT",
		"USER_AGENT",
		"GIT_REMOTE",
		"GIT_BRANCH",
		"COMMIT_MESSAGE",
		"STRICT_REWRITE",
		"LOG_LEVEL",
		"HISTORY_DB",
	}
}
