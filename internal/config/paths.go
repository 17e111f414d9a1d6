package config

import (
	"os"
	"path/filepath"

	"github.com/atomiclab/atomic/internal/constants"
	"github.com/atomiclab/atomic/internal/errors"
)

// HomeDir returns the path to the atomic home directory.
// If the ATOMIC_HOME environment variable is set, it is used verbatim;
// otherwise the default is ~/.atomic.
func HomeDir() (string, error) {
	if home := os.Getenv("ATOMIC_HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AtomicHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
// This is typically ~/.atomic/config.yaml on Unix systems.
func GlobalConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the relative path to the project configuration
// file. This is always .atomic/config.yaml relative to the working directory.
func ProjectConfigPath() string {
	return filepath.Join(constants.ProjectConfigDir, constants.GlobalConfigName)
}

// ResolveOutputDir returns the base artifact directory for cfg, falling
// back to {home}/output when output.dir is unset.
func ResolveOutputDir(cfg *Config) (string, error) {
	if cfg != nil && cfg.Output.Dir != "" {
		return cfg.Output.Dir, nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.OutputDir), nil
}
