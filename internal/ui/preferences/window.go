package preferences

import (
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	halfway       *widget.Check
	completion    *widget.Check
	removeDone    *widget.Check
	idlePause     *widget.Check
	idleMinutes   *widget.Entry
	launchAtLogin *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("TimerDeck Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		halfway:       widget.NewCheck("Notify at halfway", nil),
		completion:    widget.NewCheck("Notify on completion", nil),
		removeDone:    widget.NewCheck("Remove timers when they complete", nil),
		idlePause:     widget.NewCheck("Pause running timers when I am away", nil),
		idleMinutes:   widget.NewEntry(),
		launchAtLogin: widget.NewCheck("Launch at login", nil),
	}
	prefs.idlePause.OnChanged = func(checked bool) {
		if checked {
			prefs.idleMinutes.Enable()
		} else {
			prefs.idleMinutes.Disable()
		}
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.halfway,
		prefs.completion,
		widget.NewLabelWithStyle("Timers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.removeDone,
		prefs.idlePause,
		container.NewHBox(widget.NewLabel("Away after"), prefs.idleMinutes, widget.NewLabel("min")),
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.launchAtLogin,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(380, 340))

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.halfway.SetChecked(settings.HalfwayAlerts)
	prefs.completion.SetChecked(settings.CompletionAlerts)
	prefs.removeDone.SetChecked(settings.RemoveCompleted)
	prefs.idleMinutes.SetText(strconv.Itoa(int(settings.IdlePauseAfter / time.Minute)))
	prefs.idlePause.SetChecked(settings.IdlePauseEnabled)
	prefs.idlePause.OnChanged(settings.IdlePauseEnabled)
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.HalfwayAlerts = prefs.halfway.Checked
	settings.CompletionAlerts = prefs.completion.Checked
	settings.RemoveCompleted = prefs.removeDone.Checked
	settings.IdlePauseEnabled = prefs.idlePause.Checked
	if minutes, ok := parsePositiveInt(prefs.idleMinutes.Text); ok {
		settings.IdlePauseAfter = time.Duration(minutes) * time.Minute
	}
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
