package confirm

import (
	"bytes"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_Confirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"full yes mixed case", "  YeS \n", false, true},
		{"no", "n\n", false, false},
		{"anything else", "sure\n", false, false},
		{"empty declines", "\n", false, false},
		{"empty with default yes", "\n", true, true},
		{"eof declines", "", false, false},
		{"eof declines even with default yes", "", true, false},
		{"answer without newline", "y", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConsole(strings.NewReader(tt.input), &out)
			if tt.defaultYes {
				c.WithDefaultYes()
			}

			got, err := c.Confirm("Create it?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasPrefix(out.String(), "Create it? [y/N] ") || strings.HasPrefix(out.String(), "Create it? [Y/n] "))
		})
	}
}

func TestConsole_SequentialPrompts(t *testing.T) {
	var out bytes.Buffer
	ask := NewConsole(strings.NewReader("y\nn\n"), &out).Func()

	first, err := ask("one?")
	require.NoError(t, err)
	second, err := ask("two?")
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
}

func TestConsole_ReadError(t *testing.T) {
	c := NewConsole(iotest.ErrReader(assert.AnError), &bytes.Buffer{})

	_, err := c.Confirm("Create it?")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIOFailure))
}

func TestFixedAnswers(t *testing.T) {
	ok, err := Yes("anything")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = No("anything")
	assert.NoError(t, err)
	assert.False(t, ok)
}
