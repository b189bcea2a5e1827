package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"next-steps.md":      {Data: []byte("# Next steps\n\nRun claude.")},
		"option-force.md":    {Data: []byte("Force overwrites files.")},
		"nested/manifest.md": {Data: []byte("What gets installed.")},
		"notes.txxt":         {Data: []byte("ignored")},
	}
}

func TestTopicManager_ScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(testFS())
		require.NoError(t, tm.scanTopics())

		assert.Equal(t, []string{"manifest", "next-steps", "option-force"}, tm.ListTopics())

		topic, ok := tm.GetTopic("manifest")
		require.True(t, ok)
		assert.Equal(t, "nested/manifest.md", topic.Path)
		assert.Equal(t, ".md", topic.Format())
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})

	t.Run("nil fs", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.scanTopics())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestTopicManager_GetTopic(t *testing.T) {
	tm := New(testFS())
	require.NoError(t, tm.scanTopics())

	for _, name := range []string{"force", "--force", "-force", "option-force"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-force", topic.Name)
	}

	_, ok := tm.GetTopic("missing")
	assert.False(t, ok)
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "agent-teams", Short: "root short"}
	root.AddCommand(&cobra.Command{Use: "install", Short: "Install things", Run: func(*cobra.Command, []string) {}})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	_, err := Initialize(root, testFS())
	require.NoError(t, err)
	return root, &out
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	root, out := newRoot(t)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestHelpCommand(t *testing.T) {
	t.Run("no args shows root help", func(t *testing.T) {
		out := execute(t, "help")
		assert.Contains(t, out, "root short")
		assert.Contains(t, out, "install")
	})

	t.Run("topic list", func(t *testing.T) {
		out := execute(t, "help", "topics")
		assert.Contains(t, out, "General topics:\n  manifest\n  next-steps")
		assert.Contains(t, out, "Option topics:\n  --force")
		assert.Contains(t, out, "Use 'agent-teams help <topic>'")
	})

	t.Run("topic", func(t *testing.T) {
		out := execute(t, "help", "--force")
		assert.Equal(t, "Force overwrites files.", out)
	})

	t.Run("command", func(t *testing.T) {
		out := execute(t, "help", "install")
		assert.Contains(t, out, "Install things")
		assert.NotContains(t, out, "root short")
	})

	t.Run("unknown", func(t *testing.T) {
		out := execute(t, "help", "bogus")
		assert.True(t, strings.HasPrefix(out, `Unknown help topic "bogus".`))
	})
}

func TestGlamourRenderer(t *testing.T) {
	r := NewPlainGlamourRenderer()

	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))

	out := r.Render("# Title\n\nSome *body* text.", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}

func TestHelpCommand_OwnHelp(t *testing.T) {
	out := execute(t, "help", "--help")
	assert.Contains(t, out, "agent-teams help topics")
}
