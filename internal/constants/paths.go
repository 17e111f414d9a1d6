package constants

// Log file names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.atomic/logs/atomic.log
	CLILogFileName = "atomic.log"
)

// Log rotation settings for the global CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of a rotated file.
	LogMaxAgeDays = 28

	// LogCompress controls gzip compression of rotated files.
	LogCompress = true
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global atomic configuration file.
	// This file is located in the atomic home directory.
	GlobalConfigName = "config.yaml"

	// ProjectConfigDir is the project-local configuration directory.
	ProjectConfigDir = ".atomic"
)
