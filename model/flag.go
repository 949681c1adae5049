package model

// Flags represents the command line flags shared by every subcommand.
type Flags struct {
	Command   string
	Args      []string
	Version   bool
	EnvFile   string
	LogLevel  string
	Output    string
	Store     bool
	DBPath    string
	Strict    bool
	DryRun    bool
	NoPush    bool
	Skip      []string
	Limit     int
	Kind      string
	OlderThan int
}
