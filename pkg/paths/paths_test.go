package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTarget(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cwd := filepath.FromSlash("/srv/work")

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{name: "default is cwd", dir: "", want: cwd},
		{name: "dot is cwd", dir: ".", want: cwd},
		{name: "relative", dir: "my-project", want: filepath.Join(cwd, "my-project")},
		{name: "relative with dots", dir: "./a/../b", want: filepath.Join(cwd, "b")},
		{name: "absolute", dir: filepath.FromSlash("/opt/app/"), want: filepath.FromSlash("/opt/app")},
		{name: "home", dir: "~", want: home},
		{name: "under home", dir: "~/projects/webapp", want: filepath.Join(home, "projects", "webapp")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTarget(tt.dir, cwd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTarget_UsesWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := ResolveTarget("sub", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "sub"), got)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, "", ExpandHome(""))
	assert.Equal(t, "/abs", ExpandHome("/abs"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "x"), ExpandHome("~/x"))
	assert.Equal(t, "~other/x", ExpandHome("~other/x"))
}

func TestXDGDirs(t *testing.T) {
	cfg := t.TempDir()
	state := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfg)
	t.Setenv("XDG_STATE_HOME", state)

	assert.Equal(t, filepath.Join(cfg, "agent-teams"), ConfigDir())
	assert.Equal(t, filepath.Join(cfg, "agent-teams", "config.toml"), UserConfigPath())
	assert.Equal(t, filepath.Join(state, "agent-teams"), StateDir())
}
