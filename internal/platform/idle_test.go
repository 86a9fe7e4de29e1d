package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timerdeck/internal/core/timers"
)

func TestParseIdleMillis(t *testing.T) {
	idle, err := parseIdleMillis("15320\n")
	require.NoError(t, err)
	assert.Equal(t, 15320*time.Millisecond, idle)

	idle, err = parseIdleMillis("-4")
	require.NoError(t, err)
	assert.Zero(t, idle)

	_, err = parseIdleMillis("idle")
	assert.Error(t, err)
}

func TestParseHIDIdleTime(t *testing.T) {
	output := `+-o IOHIDSystem  <class IOHIDSystem, id 0x100000487>
    {
      "HIDIdleTime" = 2500000000
      "HIDParameters" = {}
    }
`
	idle, err := parseHIDIdleTime(output)
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, idle)

	_, err = parseHIDIdleTime("no idle here")
	assert.ErrorIs(t, err, timers.ErrIdleUnsupported)
}

func TestUnsupportedIdleProvider(t *testing.T) {
	_, err := unsupportedIdleProvider{reason: "no probe"}.IdleDuration()
	assert.ErrorIs(t, err, timers.ErrIdleUnsupported)
	assert.ErrorContains(t, err, "no probe")
}
