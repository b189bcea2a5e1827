package config

import (
	"path/filepath"
	"strings"

	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/bmad-code/agent-teams/pkg/paths"
	"github.com/bmad-code/agent-teams/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// Marshal renders cfg as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return data, nil
}

// GenerateConfigContent returns a project config template: the documented
// defaults with every value commented out.
func GenerateConfigContent() string {
	return commentOutConfigValues(DefaultsContent())
}

// WriteProjectConfig writes the template to <target>/.agent-teams.toml. An
// existing file is left alone unless force is set.
func WriteProjectConfig(fsys types.FS, target string, force bool) (string, error) {
	path := filepath.Join(target, paths.ProjectConfigFile)
	if _, err := fsys.Stat(path); err == nil && !force {
		return path, errors.Newf(errors.ErrConflict, "%s already exists, use --force to replace it", path)
	}
	if err := fsys.MkdirAll(target, 0755); err != nil {
		return path, errors.Wrapf(err, errors.ErrIOFailure, "failed to create %s", target)
	}
	if err := fsys.WriteFile(path, []byte(GenerateConfigContent()), 0644); err != nil {
		return path, errors.Wrapf(err, errors.ErrIOFailure, "failed to write %s", path)
	}
	return path, nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			// Section headers stay so uncommenting a value is enough.
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
