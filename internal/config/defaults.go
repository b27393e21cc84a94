package config

const (
	defaultThreshold     = 0.6
	defaultTopN          = 25
	defaultWorkers       = 1
	defaultPattern       = "*.txt"
	defaultInvalidUTF8   = InvalidUTF8Drop
	defaultMaxIterations = 0
	defaultStateDir      = "~/.local/share/textpurge"
	defaultJournalFile   = "journal.db"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Invalid UTF-8 handling modes for corpus reads.
const (
	InvalidUTF8Drop    = "drop"
	InvalidUTF8Replace = "replace"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Search: Search{
			Threshold: defaultThreshold,
			TopN:      defaultTopN,
			Workers:   defaultWorkers,
		},
		Corpus: Corpus{
			Pattern:     defaultPattern,
			InvalidUTF8: defaultInvalidUTF8,
		},
		Purge: Purge{
			MaxIterations: defaultMaxIterations,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Lock: Lock{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
