package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timerdeck/internal/core/model"
)

func sampleTimers() []model.Timer {
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return []model.Timer{
		{ID: "a", Name: "Focus", Category: "Work", Duration: 1500, Remaining: 700, Status: model.StatusRunning, CreatedAt: created, HalfwayNotified: true},
		{ID: "b", Name: "Walk", Category: "Break", Duration: 300, Remaining: 300, Status: model.StatusPaused, CreatedAt: created},
	}
}

func TestTimersDocumentRoundTrip(t *testing.T) {
	data, err := EncodeTimers(sampleTimers())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":1`)

	decoded, err := DecodeTimers(data)
	require.NoError(t, err)
	assert.Equal(t, sampleTimers(), decoded)
}

func TestDecodeTimersFallsBackToEmpty(t *testing.T) {
	cases := map[string][]byte{
		"absent":          nil,
		"empty":           {},
		"corrupt":         []byte("{oops"),
		"unknown version": []byte(`{"version":2,"timers":[{"id":"a"}]}`),
		"missing version": []byte(`{"timers":[{"id":"a"}]}`),
		"null timers":     []byte(`{"version":1,"timers":null}`),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			timers, _ := DecodeTimers(data)
			assert.NotNil(t, timers)
			assert.Empty(t, timers)
		})
	}
}

func TestDecodeReportsCorruption(t *testing.T) {
	_, err := DecodeTimers([]byte("{oops"))
	assert.Error(t, err)
	_, err = DecodeHistory([]byte(`{"version":7,"history":[]}`))
	assert.ErrorContains(t, err, "unsupported schema version 7")

	_, err = DecodeHistory(nil)
	assert.NoError(t, err)
}

func TestHistoryDocumentRoundTrip(t *testing.T) {
	completed := time.Date(2026, 3, 14, 9, 25, 0, 0, time.UTC)
	entries := []model.HistoryEntry{
		model.NewHistoryEntry(sampleTimers()[0], completed),
	}
	data, err := EncodeHistory(entries)
	require.NoError(t, err)

	decoded, err := DecodeHistory(data)
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)

	empty, err := EncodeHistory(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"history":[]}`, string(empty))
}
