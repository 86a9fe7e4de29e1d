package deck

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timerdeck/internal/core/model"
	"timerdeck/internal/core/timers"
)

func newTestWindow(t *testing.T) (*Window, *timers.Store) {
	t.Helper()
	app := test.NewTempApp(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := timers.NewStore(timers.Options{
		Clock:  timers.NewManualClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)),
		Logger: log,
	})
	t.Cleanup(store.Close)
	return New(app, store, timers.NewDispatcher(store, log), log), store
}

func TestAddFormCreatesTimer(t *testing.T) {
	deck, store := newTestWindow(t)

	deck.name.SetText("Focus")
	deck.duration.SetText("1500")
	deck.category.SetText("Work")
	deck.handleAdd()

	created := store.Timers()
	require.Len(t, created, 1)
	assert.Equal(t, "Focus", created[0].Name)
	assert.Equal(t, 1500, created[0].Remaining)
	assert.Empty(t, deck.formErr.Text)
	assert.Empty(t, deck.name.Text)
	assert.Contains(t, deck.filter.Options, "Work")
	assert.Len(t, deck.rows, 1)
}

func TestAddFormShowsValidationErrors(t *testing.T) {
	deck, store := newTestWindow(t)

	deck.name.SetText("F")
	deck.duration.SetText("soon")
	deck.handleAdd()

	assert.Empty(t, store.Timers())
	assert.Contains(t, deck.formErr.Text, "Duration must be greater than 0")
	assert.Contains(t, deck.formErr.Text, "Category is required")
}

func TestFilterShowsSelectedCategory(t *testing.T) {
	deck, store := newTestWindow(t)
	_, err := store.AddTimer("Focus", 60, "Work")
	require.NoError(t, err)
	_, err = store.AddTimer("Walk", 60, "Break")
	require.NoError(t, err)
	deck.Refresh()
	assert.Len(t, deck.rows, 2)

	deck.filter.SetSelected("Break")
	assert.Len(t, deck.rows, 1)

	store.Delete(store.Timers()[1].ID)
	deck.Refresh()
	assert.Equal(t, allCategories, deck.filter.Selected)
	assert.Len(t, deck.rows, 1)
}

func TestRowButtonsFollowStatus(t *testing.T) {
	deck, store := newTestWindow(t)
	timer, err := store.AddTimer("Focus", 60, "Work")
	require.NoError(t, err)
	deck.Refresh()

	row := deck.rows[timer.ID]
	require.NotNil(t, row)
	assert.False(t, row.start.Disabled())
	assert.True(t, row.pause.Disabled())

	deck.apply(timer.ID, model.ActionStart)
	row = deck.rows[timer.ID]
	assert.True(t, row.start.Disabled())
	assert.False(t, row.pause.Disabled())
	assert.Equal(t, "Running", row.status.Text)
}

func TestFilterGroups(t *testing.T) {
	groups := []timers.CategoryGroup{{Category: "Work"}, {Category: "Break"}}
	assert.Equal(t, groups, filterGroups(groups, allCategories))
	assert.Equal(t, groups[1:], filterGroups(groups, "Break"))
	assert.Empty(t, filterGroups(groups, "Gone"))
}

func TestLayoutKeyTracksStatus(t *testing.T) {
	running := []timers.CategoryGroup{{Category: "Work", Timers: []model.Timer{{ID: "a", Status: model.StatusRunning, Remaining: 5}}}}
	ticked := []timers.CategoryGroup{{Category: "Work", Timers: []model.Timer{{ID: "a", Status: model.StatusRunning, Remaining: 4}}}}
	paused := []timers.CategoryGroup{{Category: "Work", Timers: []model.Timer{{ID: "a", Status: model.StatusPaused, Remaining: 4}}}}

	assert.Equal(t, layoutKey(running), layoutKey(ticked))
	assert.NotEqual(t, layoutKey(ticked), layoutKey(paused))
}
