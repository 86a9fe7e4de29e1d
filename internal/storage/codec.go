package storage

import (
	"encoding/json"
	"fmt"

	"timerdeck/internal/core/model"
)

// SchemaVersion is the version written into every persisted document.
const SchemaVersion = 1

type timersDocument struct {
	Version int           `json:"version"`
	Timers  []model.Timer `json:"timers"`
}

type historyDocument struct {
	Version int                  `json:"version"`
	History []model.HistoryEntry `json:"history"`
}

// EncodeTimers serializes the timer collection.
func EncodeTimers(timers []model.Timer) ([]byte, error) {
	if timers == nil {
		timers = []model.Timer{}
	}
	data, err := json.Marshal(timersDocument{Version: SchemaVersion, Timers: timers})
	if err != nil {
		return nil, fmt.Errorf("encode timers: %w", err)
	}
	return data, nil
}

// DecodeTimers parses a timer document. Empty input yields an empty
// collection; corrupt input or an unknown version yields an empty
// collection together with the reason.
func DecodeTimers(data []byte) ([]model.Timer, error) {
	if len(data) == 0 {
		return []model.Timer{}, nil
	}
	var document timersDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return []model.Timer{}, fmt.Errorf("decode timers: %w", err)
	}
	if document.Version != SchemaVersion {
		return []model.Timer{}, fmt.Errorf("decode timers: unsupported schema version %d", document.Version)
	}
	if document.Timers == nil {
		return []model.Timer{}, nil
	}
	return document.Timers, nil
}

// EncodeHistory serializes the history log, most recent first.
func EncodeHistory(entries []model.HistoryEntry) ([]byte, error) {
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	data, err := json.Marshal(historyDocument{Version: SchemaVersion, History: entries})
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return data, nil
}

// DecodeHistory parses a history document with the same fallback rules as DecodeTimers.
func DecodeHistory(data []byte) ([]model.HistoryEntry, error) {
	if len(data) == 0 {
		return []model.HistoryEntry{}, nil
	}
	var document historyDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return []model.HistoryEntry{}, fmt.Errorf("decode history: %w", err)
	}
	if document.Version != SchemaVersion {
		return []model.HistoryEntry{}, fmt.Errorf("decode history: unsupported schema version %d", document.Version)
	}
	if document.History == nil {
		return []model.HistoryEntry{}, nil
	}
	return document.History, nil
}
