package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/joho/godotenv"

	"timerdeck/internal/config"
	"timerdeck/internal/core/model"
	"timerdeck/internal/core/timers"
	"timerdeck/internal/platform"
	"timerdeck/internal/storage"
	"timerdeck/internal/telemetry"
	"timerdeck/internal/ui/deck"
	"timerdeck/internal/ui/format"
	"timerdeck/internal/ui/history"
	"timerdeck/internal/ui/notify"
	"timerdeck/internal/ui/preferences"
	"timerdeck/internal/ui/tray"
)

const (
	appName    = "TimerDeck"
	appID      = "com.timerdeck.app"
	appVersion = "0.1.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("timerdeck exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load(appName)
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	guard, err := platform.AcquireSingleInstance(appName, log)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Info("another instance is running, asked it to show itself")
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	ctx := context.Background()
	shutdownTelemetry, err := telemetry.Init(ctx, cfg.OTELEndpoint, cfg.ServiceName, appVersion, cfg.OTELInsecure)
	if err != nil {
		log.Warn("telemetry disabled", slog.String("error", err.Error()))
		shutdownTelemetry = func(context.Context) error { return nil }
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			log.Warn("telemetry shutdown", slog.String("error", err.Error()))
		}
	}()

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn("close storage", slog.String("error", err.Error()))
		}
	}()
	log.Info("storage ready", slog.String("backend", cfg.Backend), slog.String("data_dir", cfg.DataDir))

	settings, err := storage.LoadSettings(cfg.DataDir)
	if err != nil {
		log.Warn("using default settings", slog.String("error", err.Error()))
	}

	store := timers.NewStore(timers.Options{Port: backend, Logger: log})
	if err := store.Load(ctx); err != nil {
		log.Warn("starting with empty timers", slog.String("error", err.Error()))
	}
	scheduler := timers.NewScheduler(store, nil, settings.EngineConfig(cfg.TickInterval), log)
	scheduler.SetIdleChecker(platform.NewIdleProvider())
	dispatcher := timers.NewDispatcher(store, log)

	launchAtLogin, err := platform.NewLaunchAtLogin(platform.NewService(), appName, log)
	if err != nil {
		log.Warn("launch at login unavailable", slog.String("error", err.Error()))
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.HistoryIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("TimerDeck is running in the system tray."))
	trayWindow.SetCloseIntercept(trayWindow.Hide)
	desktopApp.SetSystemTrayWindow(trayWindow)
	desktopApp.SetSystemTrayIcon(theme.HistoryIcon())

	notifier := notify.New(fyneApp, settings)
	deckWindow := deck.New(fyneApp, store, dispatcher, log)
	historyWindow := history.New(fyneApp, store, log)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(cfg.DataDir, settings); err != nil {
			log.Error("save settings", slog.String("error", err.Error()))
		}
		scheduler.UpdateConfig(settings.EngineConfig(cfg.TickInterval))
		notifier.SetSettings(settings)
		applyLaunchAtLogin(launchAtLogin, settings.LaunchAtLogin, log)
	})

	var trayManager *tray.Manager
	refresh := func() {
		trayManager.SetStatus(trayStatus(store.Stats("")))
		trayManager.SetCategories(store.Categories())
		deckWindow.Refresh()
		historyWindow.Refresh()
	}

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnShowTimers:  deckWindow.Show,
		OnShowHistory: historyWindow.Show,
		OnPreferences: prefsWindow.Show,
		OnCategoryAction: func(category string, action model.Action) {
			if _, err := dispatcher.BulkAction(category, action); err != nil {
				log.Error("tray bulk action", slog.String("error", err.Error()))
			}
			refresh()
		},
		OnAllAction: func(action model.Action) {
			if _, err := dispatcher.BulkActionAll(action); err != nil {
				log.Error("tray bulk action", slog.String("error", err.Error()))
			}
			refresh()
		},
		OnClearCompleted: func() {
			store.ClearCompleted()
			refresh()
		},
		OnQuit: fyneApp.Quit,
	})
	guard.OnActivate(func() {
		fyne.Do(deckWindow.Show)
	})

	events := store.Subscribe(64)
	go consumeEvents(events, notifier, refresh, log)

	fyneApp.Lifecycle().SetOnStarted(func() {
		refresh()
		scheduler.Start()
	})
	fyneApp.Lifecycle().SetOnStopped(func() {
		scheduler.Stop()
		store.Close()
	})

	deckWindow.Show()
	fyneApp.Run()
	return nil
}

// consumeEvents forwards engine events to notifications and schedules one
// UI refresh at a time on the fyne thread.
func consumeEvents(events <-chan timers.Event, notifier *notify.Notifier, refresh func(), log *slog.Logger) {
	var pending atomic.Bool
	for event := range events {
		switch event.Type {
		case timers.EventHalfway, timers.EventCompleted, timers.EventIdlePaused:
			notifier.Handle(event)
		case timers.EventPersistFailed:
			log.Warn("changes not saved", slog.String("error", event.Message))
		case timers.EventIdleError:
			log.Debug("idle detection", slog.String("error", event.Message))
		}

		if pending.CompareAndSwap(false, true) {
			fyne.Do(func() {
				pending.Store(false)
				refresh()
			})
		}
	}
}

func applyLaunchAtLogin(launch *platform.LaunchAtLogin, enabled bool, log *slog.Logger) {
	if launch == nil {
		return
	}
	if err := launch.Apply(enabled); err != nil {
		log.Error("launch at login", slog.String("error", err.Error()))
	}
}

func trayStatus(stats timers.CategoryStats) string {
	return format.TrayStatus(stats.Running, stats.Paused, stats.Completed)
}
