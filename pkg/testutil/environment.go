package testutil

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/bmad-code/agent-teams/pkg/filesystem"
	"github.com/bmad-code/agent-teams/pkg/types"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is an isolated install target.
type TestEnvironment struct {
	// Root is the absolute path of the install target. It is not created.
	Root string
	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. HOME and the XDG
// directories always point at a fresh temp dir so log and config files never
// leak out of the test.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		env.Root = "/virtual/project"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		env.Root = filepath.Join(t.TempDir(), "project")
		env.FS = filesystem.NewOS()
	default:
		t.Fatalf("unknown environment type %d", envType)
	}
	return env
}

// Path joins a slash-separated relative path onto Root.
func (env *TestEnvironment) Path(rel string) string {
	return filepath.Join(env.Root, filepath.FromSlash(rel))
}

// MkdirRoot creates the target root.
func (env *TestEnvironment) MkdirRoot() {
	env.t.Helper()
	require.NoError(env.t, env.FS.MkdirAll(env.Root, 0755))
}

// WriteFile creates rel below Root with content, making parents as needed.
func (env *TestEnvironment) WriteFile(rel, content string) {
	env.t.Helper()
	p := env.Path(rel)
	require.NoError(env.t, env.FS.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(env.t, env.FS.WriteFile(p, []byte(content), 0644))
}

// Mkdir creates rel below Root.
func (env *TestEnvironment) Mkdir(rel string) {
	env.t.Helper()
	require.NoError(env.t, env.FS.MkdirAll(env.Path(rel), 0755))
}

// ReadFile returns the content of rel below Root.
func (env *TestEnvironment) ReadFile(rel string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(env.Path(rel))
	require.NoError(env.t, err)
	return string(data)
}

// Exists reports whether rel exists below Root.
func (env *TestEnvironment) Exists(rel string) bool {
	_, err := env.FS.Lstat(env.Path(rel))
	return err == nil
}

// Mode returns the permission bits of rel below Root.
func (env *TestEnvironment) Mode(rel string) fs.FileMode {
	env.t.Helper()
	info, err := env.FS.Stat(env.Path(rel))
	require.NoError(env.t, err)
	return info.Mode().Perm()
}
