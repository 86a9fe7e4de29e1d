package notify

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timerdeck/internal/core/model"
	"timerdeck/internal/core/timers"
	"timerdeck/internal/ui/preferences"
)

type recordingSender struct {
	sent []*fyne.Notification
}

func (sender *recordingSender) SendNotification(notification *fyne.Notification) {
	sender.sent = append(sender.sent, notification)
}

var focus = model.Timer{ID: "a", Name: "Focus", Category: "Work", Duration: 1500, Remaining: 750}

func TestNotificationForHalfwayAndCompletion(t *testing.T) {
	settings := preferences.DefaultSettings()

	halfway := Notification(timers.Event{Type: timers.EventHalfway, Timer: focus}, settings)
	require.NotNil(t, halfway)
	assert.Equal(t, "Halfway there", halfway.Title)
	assert.Equal(t, "Focus (Work): 12:30 left", halfway.Content)

	completed := Notification(timers.Event{Type: timers.EventCompleted, Timer: focus}, settings)
	require.NotNil(t, completed)
	assert.Equal(t, "Focus (Work) finished after 25:00", completed.Content)

	assert.Nil(t, Notification(timers.Event{Type: timers.EventTick}, settings))
}

func TestNotifierRespectsPreferences(t *testing.T) {
	sender := &recordingSender{}
	settings := preferences.DefaultSettings()
	settings.HalfwayAlerts = false
	notifier := New(sender, settings)

	assert.False(t, notifier.Handle(timers.Event{Type: timers.EventHalfway, Timer: focus}))
	assert.True(t, notifier.Handle(timers.Event{Type: timers.EventCompleted, Timer: focus}))

	settings.CompletionAlerts = false
	notifier.SetSettings(settings)
	assert.False(t, notifier.Handle(timers.Event{Type: timers.EventCompleted, Timer: focus}))
	assert.True(t, notifier.Handle(timers.Event{Type: timers.EventIdlePaused, Count: 2}))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "Timer completed", sender.sent[0].Title)
	assert.Contains(t, sender.sent[1].Content, "Paused 2 running")
}
