// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "path_escape",
			code:    errors.ErrPathEscape,
			message: "../escape.txt resolves outside target",
			wantStr: "[PATH_ESCAPE] ../escape.txt resolves outside target",
		},
		{
			name:    "invalid_target",
			code:    errors.ErrInvalidTarget,
			message: "target is not a directory",
			wantStr: "[INVALID_TARGET] target is not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrConflict, "%s exists with different content", ".claude/agents/pm.md")
	assert.Equal(t, ".claude/agents/pm.md exists with different content", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("permission denied")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrIOFailure, "writing file")

		require.NotNil(t, err)
		assert.Equal(t, errors.ErrIOFailure, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[IO_FAILURE] writing file: permission denied", err.Error())
		assert.Equal(t, "writing file: permission denied", err.Cause())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrPathEscape, "escape").
		WithDetail("destination", "../x").
		WithDetail("root", "/tmp/project")

	assert.Equal(t, "../x", err.Details["destination"])
	assert.Equal(t, "/tmp/project", err.Details["root"])
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrConflict, "error 1")
	err2 := errors.New(errors.ErrConflict, "error 2")
	err3 := errors.New(errors.ErrIOFailure, "error 3")

	assert.True(t, err1.Is(err2), "same code should match")
	assert.False(t, err1.Is(err3), "different codes should not match")
	assert.True(t, stderrors.Is(err1, err2), "errors.Is should use the code")
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrLocked, "locked"), errors.ErrLocked, true},
		{"different_code", errors.New(errors.ErrLocked, "locked"), errors.ErrInternal, false},
		{"wrapped_error", fmt.Errorf("outer: %w", errors.New(errors.ErrPathEscape, "x")), errors.ErrPathEscape, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrUnknown, false},
		{"nil_error", nil, errors.ErrUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrInvalidManifest, errors.GetErrorCode(errors.New(errors.ErrInvalidManifest, "dup")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
}

func TestCause(t *testing.T) {
	assert.Equal(t, "", errors.Cause(nil))
	assert.Equal(t, "plain", errors.Cause(stderrors.New("plain")))

	wrapped := fmt.Errorf("context: %w", errors.New(errors.ErrConflict, "content differs"))
	assert.Equal(t, "content differs", errors.Cause(wrapped))
}
