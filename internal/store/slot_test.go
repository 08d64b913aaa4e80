package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotLifecycle(t *testing.T) {
	var s Slot[string]

	view := s.View()
	assert.False(t, view.Loading)
	assert.NoError(t, view.Err)
	assert.False(t, view.Success)

	gen := s.Begin()
	assert.True(t, s.View().Loading)

	require.True(t, s.Resolve(gen, "payload"))
	view = s.View()
	assert.False(t, view.Loading)
	assert.Equal(t, "payload", view.Value)
	assert.True(t, view.Success)
}

func TestSlotFailureKeepsPreviousValue(t *testing.T) {
	var s Slot[int]

	require.True(t, s.Resolve(s.Begin(), 42))

	gen := s.Begin()
	require.True(t, s.Fail(gen, errors.New("network down")))

	view := s.View()
	assert.EqualError(t, view.Err, "network down")
	assert.Equal(t, 42, view.Value, "failed refresh must not roll back data")
}

func TestSlotBeginClearsPriorError(t *testing.T) {
	var s Slot[int]

	s.Fail(s.Begin(), errors.New("boom"))
	require.Error(t, s.View().Err)

	s.Begin()
	assert.NoError(t, s.View().Err)
}

func TestSlotStaleResponsesDropped(t *testing.T) {
	var s Slot[string]

	first := s.Begin()
	second := s.Begin()

	require.True(t, s.Resolve(second, "new"))
	// first settled after second: it must not win
	assert.False(t, s.Resolve(first, "old"))
	assert.Equal(t, "new", s.View().Value)

	assert.False(t, s.Fail(first, errors.New("stale error")))
	assert.NoError(t, s.View().Err)
}

func TestSlotResetInvalidatesPending(t *testing.T) {
	var s Slot[string]

	gen := s.Begin()
	s.Reset()

	assert.False(t, s.Resolve(gen, "late"))
	view := s.View()
	assert.Empty(t, view.Value)
	assert.False(t, view.Loading)
	assert.False(t, view.Success)
}

func TestSlotClearFlags(t *testing.T) {
	var s Slot[int]

	s.Resolve(s.Begin(), 7)
	s.ClearSuccess()
	assert.False(t, s.View().Success)

	s.Fail(s.Begin(), errors.New("x"))
	s.ClearError()
	assert.NoError(t, s.View().Err)
}
