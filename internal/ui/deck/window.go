// Package deck renders the timer collection grouped by category.
package deck

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"timerdeck/internal/core/model"
	"timerdeck/internal/core/timers"
	"timerdeck/internal/ui/format"
)

const allCategories = "All"

// Controller is the part of the timer store the window drives.
type Controller interface {
	AddTimer(name string, duration int, category string) (model.Timer, error)
	Apply(id string, action model.Action) bool
	Delete(id string)
	Groups() []timers.CategoryGroup
}

// BulkController applies one action to a whole category.
type BulkController interface {
	BulkAction(category string, action model.Action) (int, error)
}

// Window shows the add form, the category filter and one card per category.
// Every method must run on the fyne thread.
type Window struct {
	window     fyne.Window
	store      Controller
	bulk       BulkController
	log        *slog.Logger
	name       *widget.Entry
	duration   *widget.Entry
	category   *widget.SelectEntry
	formErr    *widget.Label
	filter     *widget.Select
	list       *fyne.Container
	rows       map[string]*timerRow
	layout     string
	categories []string
}

type timerRow struct {
	remaining *widget.Label
	status    *widget.Label
	progress  *widget.ProgressBar
	start     *widget.Button
	pause     *widget.Button
}

// New creates the timers window.
func New(app fyne.App, store Controller, bulk BulkController, log *slog.Logger) *Window {
	if log == nil {
		log = slog.Default()
	}
	deck := &Window{
		window:   app.NewWindow("TimerDeck"),
		store:    store,
		bulk:     bulk,
		log:      log,
		name:     widget.NewEntry(),
		duration: widget.NewEntry(),
		category: widget.NewSelectEntry(nil),
		formErr:  widget.NewLabel(""),
		list:     container.NewVBox(),
		rows:     make(map[string]*timerRow),
	}
	deck.name.SetPlaceHolder("Name")
	deck.duration.SetPlaceHolder("Seconds")
	deck.category.SetPlaceHolder("Category")
	deck.formErr.Importance = widget.DangerImportance
	deck.formErr.Wrapping = fyne.TextWrapWord
	deck.filter = widget.NewSelect([]string{allCategories}, func(string) { deck.Refresh() })
	deck.filter.SetSelected(allCategories)

	addButton := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), deck.handleAdd)
	addButton.Importance = widget.HighImportance
	form := container.NewVBox(
		widget.NewLabelWithStyle("New timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(3, deck.name, deck.duration, deck.category),
		container.NewBorder(nil, nil, nil, addButton, deck.formErr),
		container.NewBorder(nil, nil, widget.NewLabel("Show"), nil, deck.filter),
	)

	deck.window.SetContent(container.NewBorder(form, nil, nil, nil, container.NewVScroll(deck.list)))
	deck.window.SetCloseIntercept(deck.window.Hide)
	deck.window.Resize(fyne.NewSize(560, 640))
	deck.Refresh()
	return deck
}

// Show displays the window.
func (deck *Window) Show() {
	deck.Refresh()
	deck.window.Show()
	deck.window.RequestFocus()
}

// Refresh redraws the collection. When only remaining times changed, rows
// are updated in place.
func (deck *Window) Refresh() {
	groups := deck.store.Groups()
	deck.syncCategories(groups)

	visible := filterGroups(groups, deck.filter.Selected)
	if key := layoutKey(visible); key != deck.layout {
		deck.layout = key
		deck.rebuild(visible)
		return
	}
	for _, group := range visible {
		for _, timer := range group.Timers {
			if row, ok := deck.rows[timer.ID]; ok {
				row.update(timer)
			}
		}
	}
}

func (deck *Window) syncCategories(groups []timers.CategoryGroup) {
	names := make([]string, 0, len(groups))
	for _, group := range groups {
		names = append(names, group.Category)
	}
	if !slices.Equal(names, deck.categories) {
		deck.categories = names
		deck.category.SetOptions(names)
	}

	options := append([]string{allCategories}, names...)
	if !slices.Equal(options, deck.filter.Options) {
		deck.filter.SetOptions(options)
	}
	if !slices.Contains(options, deck.filter.Selected) {
		deck.filter.SetSelected(allCategories)
	}
}

func (deck *Window) rebuild(groups []timers.CategoryGroup) {
	deck.list.RemoveAll()
	clear(deck.rows)

	if len(groups) == 0 {
		deck.list.Add(widget.NewLabel("No timers yet. Add one above."))
		return
	}
	for _, group := range groups {
		deck.list.Add(deck.groupCard(group))
	}
}

func (deck *Window) groupCard(group timers.CategoryGroup) *widget.Card {
	category := group.Category
	bulkButtons := container.NewHBox(
		widget.NewButtonWithIcon("Start all", theme.MediaPlayIcon(), func() { deck.applyBulk(category, model.ActionStart) }),
		widget.NewButtonWithIcon("Pause all", theme.MediaPauseIcon(), func() { deck.applyBulk(category, model.ActionPause) }),
		widget.NewButtonWithIcon("Reset all", theme.MediaReplayIcon(), func() { deck.applyBulk(category, model.ActionReset) }),
	)

	content := container.NewVBox(bulkButtons)
	for _, timer := range group.Timers {
		content.Add(deck.timerRow(timer))
	}
	return widget.NewCard(category, statsLine(group.Stats()), content)
}

func (deck *Window) timerRow(timer model.Timer) fyne.CanvasObject {
	id := timer.ID
	row := &timerRow{
		remaining: widget.NewLabel(""),
		status:    widget.NewLabel(""),
		progress:  widget.NewProgressBar(),
	}
	row.start = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() { deck.apply(id, model.ActionStart) })
	row.pause = widget.NewButtonWithIcon("", theme.MediaPauseIcon(), func() { deck.apply(id, model.ActionPause) })
	reset := widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() { deck.apply(id, model.ActionReset) })
	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		deck.store.Delete(id)
		deck.Refresh()
	})
	row.progress.TextFormatter = func() string { return "" }
	row.update(timer)
	deck.rows[id] = row

	title := widget.NewLabelWithStyle(timer.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	controls := container.NewHBox(row.remaining, row.status, row.start, row.pause, reset, remove)
	return container.NewVBox(container.NewBorder(nil, nil, title, controls), row.progress)
}

func (row *timerRow) update(timer model.Timer) {
	row.remaining.SetText(format.Remaining(timer.Remaining))
	row.status.SetText(string(timer.Status))
	row.progress.SetValue(timer.Progress())
	setEnabled(row.start, timer.Status == model.StatusPaused && timer.Remaining > 0)
	setEnabled(row.pause, timer.Status == model.StatusRunning)
}

func (deck *Window) apply(id string, action model.Action) {
	deck.store.Apply(id, action)
	deck.Refresh()
}

func (deck *Window) applyBulk(category string, action model.Action) {
	if _, err := deck.bulk.BulkAction(category, action); err != nil {
		deck.log.Error("bulk action failed", slog.String("category", category), slog.String("error", err.Error()))
	}
	deck.Refresh()
}

func (deck *Window) handleAdd() {
	seconds, err := strconv.Atoi(strings.TrimSpace(deck.duration.Text))
	if err != nil {
		seconds = 0
	}
	_, err = deck.store.AddTimer(deck.name.Text, seconds, deck.category.Text)
	if err != nil {
		deck.formErr.SetText(formError(err))
		return
	}
	deck.formErr.SetText("")
	deck.name.SetText("")
	deck.duration.SetText("")
	deck.Refresh()
}

// filterGroups keeps every group for the "All" filter, otherwise only the
// selected category.
func filterGroups(groups []timers.CategoryGroup, selected string) []timers.CategoryGroup {
	if selected == "" || selected == allCategories {
		return groups
	}
	for _, group := range groups {
		if group.Category == selected {
			return []timers.CategoryGroup{group}
		}
	}
	return nil
}

// layoutKey identifies the rows on screen, their order and their status.
func layoutKey(groups []timers.CategoryGroup) string {
	var builder strings.Builder
	for _, group := range groups {
		builder.WriteString(group.Category)
		builder.WriteByte(0)
		for _, timer := range group.Timers {
			builder.WriteString(timer.ID)
			builder.WriteByte(1)
			builder.WriteString(string(timer.Status))
			builder.WriteByte(1)
		}
		builder.WriteByte(2)
	}
	return builder.String()
}

func statsLine(stats timers.CategoryStats) string {
	return fmt.Sprintf("%d timers: %d running, %d paused, %d completed",
		stats.Total, stats.Running, stats.Paused, stats.Completed)
}

func formError(err error) string {
	var validation *model.ValidationError
	if !errors.As(err, &validation) {
		return err.Error()
	}
	messages := make([]string, 0, len(validation.Fields))
	for _, field := range validation.Fields {
		messages = append(messages, field.Message)
	}
	return strings.Join(messages, "\n")
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
	} else {
		button.Disable()
	}
}
