package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindAuth, KindOf(Auth("no")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindConflict, KindOf(Conflict("taken")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("handling request: %w", NotFound("sweet not found"))
	assert.Equal(t, KindNotFound, KindOf(err))

	ae, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "sweet not found", ae.Message)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("token expired")
	err := Auth("invalid or expired token").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "invalid or expired token")
	assert.Contains(t, err.Error(), "token expired")
}

func TestDetails(t *testing.T) {
	err := Conflict("insufficient stock").WithDetails(map[string]interface{}{"available": 3})
	ae, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, 3, ae.Details["available"])
}
