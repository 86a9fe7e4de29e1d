package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"timerdeck/internal/core/model"
)

func TestRemaining(t *testing.T) {
	cases := map[int]string{
		-5:    "00:00",
		0:     "00:00",
		9:     "00:09",
		65:    "01:05",
		3599:  "59:59",
		3600:  "1:00:00",
		86400: "24:00:00",
	}
	for seconds, expected := range cases {
		assert.Equal(t, expected, Remaining(seconds), "seconds=%d", seconds)
	}
}

func TestTimerLine(t *testing.T) {
	timer := model.Timer{Name: "Focus", Duration: 1500, Remaining: 754, Status: model.StatusRunning}
	assert.Equal(t, "Focus  12:34 / 25:00  Running", TimerLine(timer))
}

func TestTrayStatus(t *testing.T) {
	assert.Equal(t, "no timers", TrayStatus(0, 0, 0))
	assert.Equal(t, "2 running, 1 paused, 0 done", TrayStatus(2, 1, 0))
}
