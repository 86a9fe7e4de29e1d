package model

import "time"

// Status is the lifecycle state of a timer.
type Status string

const (
	StatusPaused    Status = "Paused"
	StatusRunning   Status = "Running"
	StatusCompleted Status = "Completed"
)

// Valid reports whether the status is one of the known states.
func (status Status) Valid() bool {
	switch status {
	case StatusPaused, StatusRunning, StatusCompleted:
		return true
	}
	return false
}

// Timer is a named countdown with a fixed duration in whole seconds.
type Timer struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Duration        int       `json:"duration"`
	Remaining       int       `json:"remaining"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	HalfwayNotified bool      `json:"halfwayNotified,omitempty"`
}

// PastHalfway reports whether at least half of the duration has elapsed.
func (timer Timer) PastHalfway() bool {
	return timer.Remaining*2 <= timer.Duration
}

// Progress returns the elapsed fraction in [0, 1].
func (timer Timer) Progress() float64 {
	if timer.Duration <= 0 {
		return 1
	}
	progress := float64(timer.Duration-timer.Remaining) / float64(timer.Duration)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// HistoryEntry is an immutable snapshot of a timer taken when it completed.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Duration    int       `json:"duration"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	CompletedAt time.Time `json:"completedAt"`
}

// NewHistoryEntry builds the history record for a completed timer.
func NewHistoryEntry(snapshot Timer, completedAt time.Time) HistoryEntry {
	return HistoryEntry{
		ID:          snapshot.ID,
		Name:        snapshot.Name,
		Category:    snapshot.Category,
		Duration:    snapshot.Duration,
		Status:      StatusCompleted,
		CreatedAt:   snapshot.CreatedAt,
		CompletedAt: completedAt,
	}
}
