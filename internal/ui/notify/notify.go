// Package notify turns engine events into desktop notifications.
package notify

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"

	"timerdeck/internal/core/timers"
	"timerdeck/internal/ui/format"
	"timerdeck/internal/ui/preferences"
)

// Sender delivers a notification; fyne.App satisfies it.
type Sender interface {
	SendNotification(notification *fyne.Notification)
}

// Notifier gates notifications on the current preferences.
type Notifier struct {
	sender   Sender
	mu       sync.Mutex
	settings preferences.Settings
}

// New creates a notifier.
func New(sender Sender, settings preferences.Settings) *Notifier {
	return &Notifier{sender: sender, settings: settings}
}

// SetSettings swaps the preferences used for gating.
func (notifier *Notifier) SetSettings(settings preferences.Settings) {
	notifier.mu.Lock()
	notifier.settings = settings
	notifier.mu.Unlock()
}

// Handle sends the notification for event, if any. Safe from any goroutine.
func (notifier *Notifier) Handle(event timers.Event) bool {
	notifier.mu.Lock()
	settings := notifier.settings
	notifier.mu.Unlock()

	notification := Notification(event, settings)
	if notification == nil {
		return false
	}
	notifier.sender.SendNotification(notification)
	return true
}

// Notification builds the notification for event or returns nil when the
// event is not user-facing or the matching alert is turned off.
func Notification(event timers.Event, settings preferences.Settings) *fyne.Notification {
	switch event.Type {
	case timers.EventHalfway:
		if !settings.HalfwayAlerts {
			return nil
		}
		return fyne.NewNotification(
			"Halfway there",
			fmt.Sprintf("%s (%s): %s left", event.Timer.Name, event.Timer.Category, format.Remaining(event.Timer.Remaining)),
		)
	case timers.EventCompleted:
		if !settings.CompletionAlerts {
			return nil
		}
		return fyne.NewNotification(
			"Timer completed",
			fmt.Sprintf("%s (%s) finished after %s", event.Timer.Name, event.Timer.Category, format.Remaining(event.Timer.Duration)),
		)
	case timers.EventIdlePaused:
		return fyne.NewNotification("Timers paused", fmt.Sprintf("Paused %d running timer(s) while you were away", event.Count))
	}
	return nil
}
