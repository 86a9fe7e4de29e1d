package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timerdeck/internal/core/model"
)

func TestWriteHistory(t *testing.T) {
	exportedAt := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	entries := []model.HistoryEntry{
		{ID: "b", Name: "Review", Category: "Work", Duration: 600, Status: model.StatusCompleted, CompletedAt: exportedAt},
		{ID: "a", Name: "Focus", Category: "Work", Duration: 1500, Status: model.StatusCompleted, CompletedAt: exportedAt.Add(-time.Hour)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, entries, exportedAt))

	var document struct {
		Version    int                  `json:"version"`
		ExportedAt time.Time            `json:"exportedAt"`
		Count      int                  `json:"count"`
		History    []model.HistoryEntry `json:"history"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &document))
	assert.Equal(t, Version, document.Version)
	assert.True(t, exportedAt.Equal(document.ExportedAt))
	assert.Equal(t, 2, document.Count)
	require.Len(t, document.History, 2)
	assert.Equal(t, "b", document.History[0].ID)
}

func TestWriteHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, nil, time.Now()))
	assert.Contains(t, buf.String(), `"history": []`)
	assert.Contains(t, buf.String(), `"count": 0`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteHistoryPropagatesWriteError(t *testing.T) {
	err := WriteHistory(failingWriter{}, nil, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "timer-history-2026-01-05.json", FileName(now))
}
