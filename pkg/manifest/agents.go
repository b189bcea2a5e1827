package manifest

import (
	"bytes"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmad-code/agent-teams/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AgentsDir is the asset directory holding agent definitions.
const AgentsDir = "agents"

// Agent is the front matter of one agent definition file.
type Agent struct {
	Name        string `yaml:"name"`
	Role        string `yaml:"role"`
	Description string `yaml:"description"`

	// File is the asset path the agent was read from.
	File string `yaml:"-"`
}

var frontMatterDelim = []byte("---")

// ParseFrontMatter extracts and decodes the YAML block delimited by "---"
// lines at the top of a markdown document. Documents without front matter
// decode to the zero value.
func ParseFrontMatter(data []byte, out interface{}) error {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(data, frontMatterDelim) {
		return nil
	}

	rest := data[len(frontMatterDelim):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return nil
	}
	rest = rest[nl+1:]

	end := -1
	for offset := 0; offset < len(rest); {
		lineEnd := bytes.IndexByte(rest[offset:], '\n')
		var line []byte
		if lineEnd < 0 {
			line = rest[offset:]
		} else {
			line = rest[offset : offset+lineEnd]
		}
		if bytes.Equal(bytes.TrimRight(line, " \r"), frontMatterDelim) {
			end = offset
			break
		}
		if lineEnd < 0 {
			break
		}
		offset += lineEnd + 1
	}
	if end < 0 {
		return errors.New(errors.ErrInvalidManifest, "unterminated front matter")
	}

	if err := yaml.Unmarshal(rest[:end], out); err != nil {
		return errors.Wrap(err, errors.ErrInvalidManifest, "invalid front matter")
	}
	return nil
}

// Agents reads the agent roster from the embedded assets, sorted by name.
func Agents() ([]Agent, error) {
	return AgentsFrom(Assets())
}

// AgentsFrom reads every *.md file directly under agents/ in fsys.
func AgentsFrom(fsys fs.FS) ([]Agent, error) {
	files, err := fs.Glob(fsys, path.Join(AgentsDir, "*.md"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidManifest, "listing agents")
	}

	agents := make([]Agent, 0, len(files))
	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidManifest, "reading %s", f)
		}

		var a Agent
		if err := ParseFrontMatter(data, &a); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidManifest, "agent %s", f)
		}
		a.File = f
		agents = append(agents, a)
	}

	sort.Slice(agents, func(i, j int) bool { return agents[i].Name < agents[j].Name })
	return agents, nil
}

// Validate checks that every agent declares a name matching its file name
// and a description, and that names are unique.
func Validate(agents []Agent) error {
	seen := make(map[string]string, len(agents))
	var problems []string

	for _, a := range agents {
		stem := strings.TrimSuffix(path.Base(a.File), path.Ext(a.File))
		switch {
		case a.Name == "":
			problems = append(problems, a.File+": missing name")
		case a.Name != stem:
			problems = append(problems, a.File+": name "+a.Name+" does not match file name")
		}
		if a.Description == "" {
			problems = append(problems, a.File+": missing description")
		}
		if prev, ok := seen[a.Name]; ok && a.Name != "" {
			problems = append(problems, a.File+": duplicate name also used by "+prev)
		}
		seen[a.Name] = a.File
	}

	if len(problems) > 0 {
		return errors.Newf(errors.ErrInvalidManifest, "invalid agents: %s", strings.Join(problems, "; "))
	}
	return nil
}
