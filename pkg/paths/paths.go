package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/bmad-code/agent-teams/pkg/errors"
)

const (
	// AppDirName is the directory name used under XDG base directories.
	AppDirName = "agent-teams"

	// UserConfigFile is the user configuration file name inside ConfigDir.
	UserConfigFile = "config.toml"

	// ProjectConfigFile is the per-project configuration file in the target root.
	ProjectConfigFile = ".agent-teams.toml"

	// LockFileName is the advisory lock taken in the target root during apply.
	LockFileName = ".agent-teams.lock"

	// EnvHome is consulted when os.UserHomeDir fails.
	EnvHome = "HOME"
)

// ConfigDir returns $XDG_CONFIG_HOME/agent-teams.
func ConfigDir() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// UserConfigPath returns the location of the user configuration file.
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), UserConfigFile)
}

// StateDir returns $XDG_STATE_HOME/agent-teams.
func StateDir() string {
	xdg.Reload()
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ResolveTarget turns the user supplied install directory into a clean
// absolute path. An empty dir means cwd. Relative paths are resolved against
// cwd, not the process working directory, so callers can test it.
func ResolveTarget(dir, cwd string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := ValidatePath(dir); err != nil {
		return "", err
	}

	dir = ExpandHome(dir)
	if !filepath.IsAbs(dir) {
		if cwd == "" {
			wd, err := os.Getwd()
			if err != nil {
				return "", errors.Wrap(err, errors.ErrInvalidTarget, "failed to determine working directory")
			}
			cwd = wd
		}
		dir = filepath.Join(cwd, dir)
	}

	return filepath.Clean(dir), nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
