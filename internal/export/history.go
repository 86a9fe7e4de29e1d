// Package export writes the completion history as a portable JSON document.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"timerdeck/internal/core/model"
)

// Version is the export document version.
const Version = 1

type historyDocument struct {
	Version    int                  `json:"version"`
	ExportedAt time.Time            `json:"exportedAt"`
	Count      int                  `json:"count"`
	History    []model.HistoryEntry `json:"history"`
}

// WriteHistory writes entries, most recent first, as an indented document.
func WriteHistory(w io.Writer, entries []model.HistoryEntry, exportedAt time.Time) error {
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(historyDocument{
		Version:    Version,
		ExportedAt: exportedAt.UTC(),
		Count:      len(entries),
		History:    entries,
	})
	if err != nil {
		return fmt.Errorf("export history: %w", err)
	}
	return nil
}

// FileName suggests a file name for an export taken at now.
func FileName(now time.Time) string {
	return "timer-history-" + now.Format(time.DateOnly) + ".json"
}
