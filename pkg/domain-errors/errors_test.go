package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodes(t *testing.T) {
	t.Run("HasCode sees through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("load attempt: %w", New(CodeNotFound, "verification attempt not found"))
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeInvalidState))
	})

	t.Run("Wrap keeps the cause reachable", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Wrap(cause, CodeInternal, "failed to load owner")
		require.ErrorIs(t, err, cause)
		assert.Equal(t, "failed to load owner: connection reset", err.Error())
		assert.Equal(t, "failed to load owner", Message(err))
	})

	t.Run("Wrap of nil is nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "unused"))
	})

	t.Run("errors.Is compares code and message", func(t *testing.T) {
		err := New(CodeInvalidState, "This verification attempt has already been completed")
		require.ErrorIs(t, err, New(CodeInvalidState, "This verification attempt has already been completed"))
		assert.NotErrorIs(t, err, New(CodeInvalidState, "certificate already revoked"))
	})

	t.Run("uncoded errors are internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
		assert.Equal(t, CodeValidation, CodeOf(New(CodeValidation, "decision is required")))
	})
}
