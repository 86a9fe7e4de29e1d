package timers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timerdeck/internal/core/model"
)

func TestGroupByCategoryKeepsFirstAppearanceOrder(t *testing.T) {
	timers := []model.Timer{
		{ID: "1", Category: "Work", Status: model.StatusRunning},
		{ID: "2", Category: "Break", Status: model.StatusPaused},
		{ID: "3", Category: "Work", Status: model.StatusCompleted},
		{ID: "4", Category: "work", Status: model.StatusPaused},
	}

	groups := GroupByCategory(timers)

	require.Len(t, groups, 3)
	assert.Equal(t, "Work", groups[0].Category)
	assert.Equal(t, []string{"1", "3"}, []string{groups[0].Timers[0].ID, groups[0].Timers[1].ID})
	assert.Equal(t, "Break", groups[1].Category)
	assert.Equal(t, "work", groups[2].Category)
	assert.Equal(t, CategoryStats{Total: 2, Running: 1, Completed: 1}, groups[0].Stats())
	assert.Equal(t, []string{"Work", "Break", "work"}, CategoryNames(timers))
}

func TestGroupByCategoryEmpty(t *testing.T) {
	assert.Empty(t, GroupByCategory(nil))
	assert.Empty(t, IndexByCategory(nil))
	assert.Empty(t, CategoryNames(nil))
}

func TestHistoryRecorderPrependsEntries(t *testing.T) {
	recorder := NewHistoryRecorder(nil)
	first := model.Timer{ID: "a", Name: "First", Category: "Work", Duration: 5, Status: model.StatusCompleted}
	second := model.Timer{ID: "b", Name: "Second", Category: "Work", Duration: 5, Status: model.StatusCompleted}

	recorder.RecordCompletion(first, testStart)
	recorder.RecordCompletion(second, testStart.Add(1))

	entries := recorder.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].ID)
	assert.Equal(t, "a", entries[1].ID)

	entries[0].Name = "changed"
	assert.Equal(t, "Second", recorder.Entries()[0].Name)
	assert.Equal(t, 2, recorder.Len())
}
