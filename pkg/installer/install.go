package installer

import (
	"github.com/bmad-code/agent-teams/pkg/manifest"
	"github.com/bmad-code/agent-teams/pkg/types"
)

// Install plans and applies src into root in one call, using an engine with
// default settings.
func Install(fsys types.FS, src manifest.Source, root string, opts Options) (*Result, error) {
	entries, err := src.Entries()
	if err != nil {
		return nil, err
	}

	engine := New(fsys)
	plan, err := engine.Plan(entries, root, opts)
	if err != nil {
		return nil, err
	}
	return engine.Apply(plan, opts)
}
