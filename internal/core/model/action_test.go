package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	for _, action := range Actions {
		parsed, err := ParseAction(action.String())
		require.NoError(t, err)
		assert.Equal(t, action, parsed)
	}

	parsed, err := ParseAction(" Pause ")
	require.NoError(t, err)
	assert.Equal(t, ActionPause, parsed)

	_, err = ParseAction("stop")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestActionValid(t *testing.T) {
	assert.True(t, ActionReset.Valid())
	assert.False(t, Action(0).Valid())
	assert.False(t, Action(42).Valid())
	assert.Equal(t, "action(42)", Action(42).String())
}

func TestTimerPastHalfway(t *testing.T) {
	timer := Timer{Duration: 5, Remaining: 3}
	assert.False(t, timer.PastHalfway())
	timer.Remaining = 2
	assert.True(t, timer.PastHalfway())

	timer = Timer{Duration: 10, Remaining: 5}
	assert.True(t, timer.PastHalfway())
	assert.InDelta(t, 0.5, timer.Progress(), 1e-9)
}
