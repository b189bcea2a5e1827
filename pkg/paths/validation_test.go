package paths

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantErr     bool
		errContains string
	}{
		{name: "empty path", path: "", wantErr: true, errContains: "path cannot be empty"},
		{name: "valid path", path: "/home/user/file.txt"},
		{name: "null bytes", path: "/home/user\x00/file.txt", wantErr: true, errContains: "null bytes"},
		{name: "excessively long path", path: "/" + strings.Repeat("a", 4097), wantErr: true, errContains: "exceeds maximum length"},
		{name: "path at max length", path: "/" + strings.Repeat("a", 4095)},
		{name: "relative path", path: "relative/path/file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestResolveWithin(t *testing.T) {
	root := filepath.FromSlash("/work/project")

	tests := []struct {
		name    string
		rel     string
		want    string
		wantErr bool
	}{
		{name: "simple file", rel: "agents/pm.md", want: "/work/project/agents/pm.md"},
		{name: "hidden dir", rel: ".claude/agents/pm.md", want: "/work/project/.claude/agents/pm.md"},
		{name: "inner dot-dot that stays inside", rel: "a/../b.md", want: "/work/project/b.md"},
		{name: "file named with leading dots", rel: "..notes.md", want: "/work/project/..notes.md"},
		{name: "parent escape", rel: "../escape.txt", wantErr: true},
		{name: "deep escape", rel: "a/b/../../../escape.txt", wantErr: true},
		{name: "absolute path", rel: "/etc/passwd", wantErr: true},
		{name: "root itself", rel: ".", wantErr: true},
		{name: "root via dot-dot", rel: "a/..", wantErr: true},
		{name: "empty", rel: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveWithin(root, tt.rel)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrPathEscape), "want PATH_ESCAPE, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestIsDescendant(t *testing.T) {
	assert.True(t, IsDescendant("/a", "/a/b"))
	assert.True(t, IsDescendant("/a/", "/a/b/c"))
	assert.False(t, IsDescendant("/a", "/a"))
	assert.False(t, IsDescendant("/a", "/ab"))
	assert.False(t, IsDescendant("/a", "/"))
	assert.False(t, IsDescendant("/a/b", "/a/c"))
}
