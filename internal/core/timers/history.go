package timers

import (
	"time"

	"timerdeck/internal/core/model"
)

// HistoryRecorder keeps the append-only completion log, most recent first.
// It is owned by a Store and only touched while the store lock is held.
type HistoryRecorder struct {
	entries []model.HistoryEntry
}

// NewHistoryRecorder seeds the recorder with previously persisted entries.
func NewHistoryRecorder(entries []model.HistoryEntry) *HistoryRecorder {
	return &HistoryRecorder{entries: append([]model.HistoryEntry(nil), entries...)}
}

// RecordCompletion prepends an entry built from the snapshot. The snapshot
// is a copy, so the originating timer record is never touched.
func (recorder *HistoryRecorder) RecordCompletion(snapshot model.Timer, at time.Time) model.HistoryEntry {
	entry := model.NewHistoryEntry(snapshot, at)
	entries := make([]model.HistoryEntry, 0, len(recorder.entries)+1)
	entries = append(entries, entry)
	recorder.entries = append(entries, recorder.entries...)
	return entry
}

// Entries returns a copy of the log.
func (recorder *HistoryRecorder) Entries() []model.HistoryEntry {
	return append([]model.HistoryEntry{}, recorder.entries...)
}

// Len returns the number of entries.
func (recorder *HistoryRecorder) Len() int {
	return len(recorder.entries)
}
