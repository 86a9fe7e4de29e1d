// Package history shows the completion log and exports it.
package history

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"timerdeck/internal/core/model"
	"timerdeck/internal/export"
	"timerdeck/internal/ui/format"
)

// Source supplies the completion log, most recent first.
type Source interface {
	History() []model.HistoryEntry
}

// Window lists completed timers. Every method must run on the fyne thread.
type Window struct {
	window  fyne.Window
	source  Source
	log     *slog.Logger
	now     func() time.Time
	entries []model.HistoryEntry
	list    *widget.List
	summary *widget.Label
}

// New creates the history window.
func New(app fyne.App, source Source, log *slog.Logger) *Window {
	if log == nil {
		log = slog.Default()
	}
	view := &Window{
		window:  app.NewWindow("Timer History"),
		source:  source,
		log:     log,
		now:     time.Now,
		summary: widget.NewLabel(""),
	}
	view.list = widget.NewList(
		func() int { return len(view.entries) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			item.(*widget.Label).SetText(format.HistoryLine(view.entries[id]))
		},
	)

	exportButton := widget.NewButtonWithIcon("Export JSON", theme.DocumentSaveIcon(), view.showExport)
	header := container.NewBorder(nil, nil, nil, exportButton, view.summary)
	view.window.SetContent(container.NewBorder(header, nil, nil, nil, view.list))
	view.window.SetCloseIntercept(view.window.Hide)
	view.window.Resize(fyne.NewSize(520, 480))
	view.Refresh()
	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.Refresh()
	view.window.Show()
	view.window.RequestFocus()
}

// Refresh reloads the log from the source.
func (view *Window) Refresh() {
	view.entries = view.source.History()
	switch len(view.entries) {
	case 0:
		view.summary.SetText("No completed timers yet.")
	case 1:
		view.summary.SetText("1 completed timer")
	default:
		view.summary.SetText(fmt.Sprintf("%d completed timers", len(view.entries)))
	}
	view.list.Refresh()
}

func (view *Window) showExport() {
	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, view.window)
			return
		}
		if writer == nil {
			return
		}
		if err := view.exportTo(writer); err != nil {
			view.log.Error("history export failed", slog.String("error", err.Error()))
			dialog.ShowError(err, view.window)
			return
		}
		view.log.Info("history exported", slog.String("uri", writer.URI().String()), slog.Int("entries", len(view.entries)))
	}, view.window)
	saveDialog.SetFileName(export.FileName(view.now()))
	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	saveDialog.Show()
}

func (view *Window) exportTo(writer fyne.URIWriteCloser) error {
	writeErr := export.WriteHistory(writer, view.source.History(), view.now())
	closeErr := writer.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return fmt.Errorf("close export: %w", closeErr)
	}
	return nil
}
