package format

import (
	"fmt"
	"time"

	"timerdeck/internal/core/model"
)

// Remaining renders seconds as mm:ss, or h:mm:ss from one hour up.
func Remaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds = seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// TimerLine is the one-line summary shown in lists and the tray.
func TimerLine(timer model.Timer) string {
	return fmt.Sprintf("%s  %s / %s  %s", timer.Name, Remaining(timer.Remaining), Remaining(timer.Duration), timer.Status)
}

// HistoryLine describes one completion.
func HistoryLine(entry model.HistoryEntry) string {
	return fmt.Sprintf("%s (%s)  %s  completed %s",
		entry.Name, entry.Category, Remaining(entry.Duration), entry.CompletedAt.Local().Format(time.DateTime))
}

// TrayStatus summarizes the collection for the tray status item.
func TrayStatus(running, paused, completed int) string {
	if running == 0 && paused == 0 && completed == 0 {
		return "no timers"
	}
	return fmt.Sprintf("%d running, %d paused, %d done", running, paused, completed)
}
