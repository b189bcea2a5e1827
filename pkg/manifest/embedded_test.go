package manifest

import (
	"io/fs"
	"sort"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMappings(t *testing.T) {
	mappings, err := LoadMappings([]byte(`
[[mappings]]
from = "agents"
to = ".claude/agents"

[[mappings]]
from = "run.sh"
to = "bin/run.sh"
mode = "0755"
`))
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, Mapping{From: "agents", To: ".claude/agents"}, mappings[0])
	assert.Equal(t, "0755", mappings[1].Mode)
}

func TestLoadMappings_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad toml":     "[[mappings]\nfrom=",
		"missing to":   "[[mappings]]\nfrom = \"agents\"\n",
		"missing from": "[[mappings]]\nto = \"x\"\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadMappings([]byte(input))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidManifest))
		})
	}
}

func TestFSSource_Entries(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/agents/pm.md":       {Data: []byte("pm")},
		"assets/agents/nested/x.md": {Data: []byte("x")},
		"assets/run.sh":             {Data: []byte("#!/bin/sh")},
	}
	src := NewFSSource(fsys, "assets", []byte(`
[[mappings]]
from = "agents"
to = ".claude/agents"

[[mappings]]
from = "run.sh"
to = "bin/run.sh"
mode = "0755"
`))

	entries, err := src.Entries()
	require.NoError(t, err)
	assert.Equal(t, []string{
		".claude",
		".claude/agents",
		".claude/agents/nested",
		".claude/agents/nested/x.md",
		".claude/agents/pm.md",
		"bin",
		"bin/run.sh",
	}, destinations(entries))

	byDest := map[string]Entry{}
	for _, e := range entries {
		byDest[e.Destination] = e
	}
	assert.Equal(t, fs.FileMode(0755), byDest["bin/run.sh"].Mode)
	assert.Equal(t, DefaultFileMode, byDest[".claude/agents/pm.md"].Mode)
	assert.Equal(t, "assets/agents/pm.md", byDest[".claude/agents/pm.md"].Source)

	data, err := byDest["bin/run.sh"].Content()
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh", string(data))
}

func TestFSSource_Errors(t *testing.T) {
	fsys := fstest.MapFS{"assets/a.md": {Data: []byte("a")}}

	t.Run("missing source", func(t *testing.T) {
		src := NewFSSource(fsys, "assets", []byte("[[mappings]]\nfrom = \"nope\"\nto = \"x\"\n"))
		_, err := src.Entries()
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidManifest))
	})

	t.Run("bad mode", func(t *testing.T) {
		src := NewFSSource(fsys, "assets", []byte("[[mappings]]\nfrom = \"a.md\"\nto = \"a.md\"\nmode = \"rwx\"\n"))
		_, err := src.Entries()
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidManifest))
	})

	t.Run("two mappings onto one destination", func(t *testing.T) {
		src := NewFSSource(fsys, "assets", []byte("[[mappings]]\nfrom = \"a.md\"\nto = \"x.md\"\n[[mappings]]\nfrom = \"a.md\"\nto = \"x.md\"\n"))
		_, err := src.Entries()
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidManifest))
	})
}

func TestEmbedded(t *testing.T) {
	entries, err := Embedded().Entries()
	require.NoError(t, err)

	dests := destinations(entries)
	assert.True(t, sort.StringsAreSorted(dests), "entries must be sorted by destination")

	assert.Contains(t, dests, ".claude/agents/pm.md")
	assert.Contains(t, dests, ".claude/commands/bmad-init.md")
	assert.Contains(t, dests, ".bmad/TEAM.md")
	assert.Contains(t, dests, ".bmad/examples/api-patterns/nextjs-api-route.ts")

	agents := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Destination, ".claude/agents/") {
			agents++
		}
		if e.IsDir() {
			continue
		}
		data, err := e.Content()
		require.NoError(t, err, e.Destination)
		assert.NotEmpty(t, data, e.Destination)
	}
	assert.Equal(t, 12, agents)

	// Deterministic across calls.
	again, err := Embedded().Entries()
	require.NoError(t, err)
	assert.Equal(t, dests, destinations(again))
}
