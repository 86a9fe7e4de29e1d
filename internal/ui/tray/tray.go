package tray

import (
	"fmt"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"timerdeck/internal/core/model"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowTimers     func()
	OnShowHistory    func()
	OnPreferences    func()
	OnCategoryAction func(category string, action model.Action)
	OnAllAction      func(action model.Action)
	OnClearCompleted func()
	OnQuit           func()
}

// Manager handles system tray state. Methods must run on the fyne thread.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	statusLabel string
	categories  []string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "starting...",
	}
	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshMenu()
}

// SetCategories rebuilds the per-category submenus when the set changes.
func (manager *Manager) SetCategories(categories []string) {
	if slices.Equal(categories, manager.categories) {
		return
	}
	manager.categories = slices.Clone(categories)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)

	items := []*fyne.MenuItem{
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Timers...", manager.callback(manager.callbacks.OnShowTimers)),
		fyne.NewMenuItem("History...", manager.callback(manager.callbacks.OnShowHistory)),
		fyne.NewMenuItemSeparator(),
	}

	if len(manager.categories) > 0 {
		categoriesItem := fyne.NewMenuItem("Categories", nil)
		var submenus []*fyne.MenuItem
		for _, category := range manager.categories {
			item := fyne.NewMenuItem(category, nil)
			item.ChildMenu = fyne.NewMenu("", manager.actionItems(func(action model.Action) {
				if manager.callbacks.OnCategoryAction != nil {
					manager.callbacks.OnCategoryAction(category, action)
				}
			})...)
			submenus = append(submenus, item)
		}
		categoriesItem.ChildMenu = fyne.NewMenu("", submenus...)

		allItem := fyne.NewMenuItem("All timers", nil)
		allItem.ChildMenu = fyne.NewMenu("", manager.actionItems(func(action model.Action) {
			if manager.callbacks.OnAllAction != nil {
				manager.callbacks.OnAllAction(action)
			}
		})...)
		items = append(items, categoriesItem, allItem)
	}

	items = append(items,
		fyne.NewMenuItem("Clear completed", manager.callback(manager.callbacks.OnClearCompleted)),
		fyne.NewMenuItem("Preferences", manager.callback(manager.callbacks.OnPreferences)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", manager.callback(manager.callbacks.OnQuit)),
	)
	manager.app.SetSystemTrayMenu(fyne.NewMenu("TimerDeck", items...))
}

func (manager *Manager) actionItems(apply func(model.Action)) []*fyne.MenuItem {
	labels := map[model.Action]string{
		model.ActionStart: "Start all",
		model.ActionPause: "Pause all",
		model.ActionReset: "Reset all",
	}
	items := make([]*fyne.MenuItem, 0, len(model.Actions))
	for _, action := range model.Actions {
		items = append(items, fyne.NewMenuItem(labels[action], func() { apply(action) }))
	}
	return items
}

func (manager *Manager) callback(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}
