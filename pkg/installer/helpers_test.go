package installer

import (
	"strings"
	"testing"

	"github.com/bmad-code/agent-teams/pkg/manifest"
	"github.com/bmad-code/agent-teams/pkg/testutil"
	"github.com/bmad-code/agent-teams/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func quietEngine(fsys types.FS, opts ...Option) *Engine {
	return New(fsys, append([]Option{WithLogger(zerolog.Nop())}, opts...)...)
}

func run(t *testing.T, engine *Engine, root string, opts Options, entries ...manifest.Entry) *Result {
	t.Helper()
	plan, err := engine.Plan(entries, root, opts)
	require.NoError(t, err)
	result, err := engine.Apply(plan, opts)
	require.NoError(t, err)
	return result
}

func noTempFiles(t *testing.T, fsys types.FS, root string) {
	t.Helper()
	snap, err := testutil.Snapshot(fsys, root)
	require.NoError(t, err)
	for p := range snap {
		require.False(t, strings.Contains(p, tempMarker), "leftover temp file %s", p)
	}
}

func bothEnvs(t *testing.T, fn func(t *testing.T, env *testutil.TestEnvironment)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly))
	})
	t.Run("os", func(t *testing.T) {
		fn(t, testutil.NewTestEnvironment(t, testutil.EnvIsolated))
	})
}
