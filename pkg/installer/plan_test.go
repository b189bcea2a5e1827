package installer

import (
	"syscall"
	"testing"

	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/bmad-code/agent-teams/pkg/manifest"
	"github.com/bmad-code/agent-teams/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_Decisions(t *testing.T) {
	bothEnvs(t, func(t *testing.T, env *testutil.TestEnvironment) {
		env.WriteFile("same.md", "same")
		env.WriteFile("changed.md", "old")
		env.Mkdir("dir")

		entries := []manifest.Entry{
			manifest.File("new.md", []byte("new")),
			manifest.File("same.md", []byte("same")),
			manifest.File("changed.md", []byte("new")),
			manifest.Dir("dir"),
			manifest.File("../escape.txt", []byte("x")),
		}

		plan, err := quietEngine(env.FS).Plan(entries, env.Root, Options{})
		require.NoError(t, err)
		assert.True(t, plan.RootExists())

		actions := map[string]Action{}
		for _, d := range plan.Decisions {
			actions[d.Entry.Destination] = d.Action
		}
		assert.Equal(t, map[string]Action{
			"new.md":        ActionCreate,
			"same.md":       ActionSkip,
			"changed.md":    ActionConflict,
			"dir":           ActionSkip,
			"../escape.txt": ActionReject,
		}, actions)

		for _, d := range plan.Decisions {
			switch d.Action {
			case ActionConflict:
				assert.True(t, errors.IsErrorCode(d.Err, errors.ErrConflict))
			case ActionReject:
				assert.True(t, errors.IsErrorCode(d.Err, errors.ErrPathEscape))
				assert.Empty(t, d.Path)
			default:
				assert.NoError(t, d.Err)
				assert.Equal(t, env.Path(d.Entry.Destination), d.Path)
			}
		}
	})
}

func TestPlan_ForceTurnsConflictsIntoOverwrites(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile("changed.md", "old")
	env.WriteFile("same.md", "same")

	plan, err := quietEngine(env.FS).Plan([]manifest.Entry{
		manifest.File("changed.md", []byte("new")),
		manifest.File("same.md", []byte("same")),
	}, env.Root, Options{Force: true})
	require.NoError(t, err)

	assert.Equal(t, ActionOverwrite, plan.Decisions[0].Action)
	assert.Equal(t, ActionSkip, plan.Decisions[1].Action, "identical content is skipped even with force")
}

func TestPlan_SortsByDestination(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	plan, err := quietEngine(env.FS).Plan([]manifest.Entry{
		manifest.File("b/x.md", nil),
		manifest.Dir("b"),
		manifest.File("a.md", nil),
	}, env.Root, Options{})
	require.NoError(t, err)

	var got []string
	for _, d := range plan.Decisions {
		got = append(got, d.Entry.Destination)
	}
	assert.Equal(t, []string{"a.md", "b", "b/x.md"}, got)
}

func TestPlan_MissingRoot(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	plan, err := quietEngine(env.FS).Plan([]manifest.Entry{
		manifest.Dir(".claude"),
		manifest.File(".claude/a.md", []byte("a")),
	}, env.Root, Options{})
	require.NoError(t, err)

	assert.False(t, plan.RootExists())
	assert.True(t, plan.HasChanges())
	assert.Equal(t, 2, plan.Count(ActionCreate))
	assert.False(t, env.Exists(""), "planning never creates the root")
}

func TestPlan_InvalidTarget(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	require.NoError(t, env.FS.MkdirAll("/virtual", 0755))
	require.NoError(t, env.FS.WriteFile(env.Root, []byte("not a dir"), 0644))

	_, err := quietEngine(env.FS).Plan([]manifest.Entry{manifest.File("a.md", nil)}, env.Root, Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTarget))

	_, err = quietEngine(env.FS).Plan(nil, "", Options{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTarget))
}

func TestPlan_DuplicateDestinations(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	_, err := quietEngine(env.FS).Plan([]manifest.Entry{
		manifest.File("a.md", []byte("1")),
		manifest.File("a.md", []byte("2")),
	}, env.Root, Options{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidManifest))
}

func TestPlan_InspectionFailure(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.MkdirRoot()
	ffs := testutil.NewFaultFS(env.FS).WithError(testutil.OpLstat, env.Path("a.md"), syscall.EACCES)

	plan, err := quietEngine(ffs).Plan([]manifest.Entry{
		manifest.File("a.md", []byte("a")),
		manifest.File("b.md", []byte("b")),
	}, env.Root, Options{})
	require.NoError(t, err)

	assert.Equal(t, ActionReject, plan.Decisions[0].Action)
	assert.True(t, errors.IsErrorCode(plan.Decisions[0].Err, errors.ErrIOFailure))
	assert.Equal(t, ActionCreate, plan.Decisions[1].Action)
}

func TestPlan_DoesNotMutate(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile("changed.md", "old")
	ffs := testutil.NewFaultFS(env.FS)

	entries, err := manifest.Embedded().Entries()
	require.NoError(t, err)
	entries = append(entries, manifest.File("changed.md", []byte("new")))

	_, err = quietEngine(ffs).Plan(entries, env.Root, Options{Force: true})
	require.NoError(t, err)
	assert.Zero(t, ffs.Mutations())
}

func TestPlan_UnreadableAsset(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	plan, err := quietEngine(env.FS).Plan([]manifest.Entry{
		{Destination: "ghost.md", Kind: manifest.KindFile},
	}, env.Root, Options{})
	require.NoError(t, err)
	assert.Equal(t, ActionReject, plan.Decisions[0].Action)
	assert.True(t, errors.IsErrorCode(plan.Decisions[0].Err, errors.ErrInvalidManifest))
}
