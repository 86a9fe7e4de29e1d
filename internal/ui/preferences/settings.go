package preferences

import (
	"time"

	"timerdeck/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	HalfwayAlerts    bool
	CompletionAlerts bool
	RemoveCompleted  bool

	IdlePauseEnabled bool
	IdlePauseAfter   time.Duration

	LaunchAtLogin bool
}

// DefaultSettings returns default settings for TimerDeck.
func DefaultSettings() Settings {
	return Settings{
		HalfwayAlerts:    true,
		CompletionAlerts: true,
		RemoveCompleted:  false,
		IdlePauseEnabled: false,
		IdlePauseAfter:   10 * time.Minute,
		LaunchAtLogin:    false,
	}
}

// EngineConfig converts settings to the timer engine configuration.
func (settings Settings) EngineConfig(tickInterval time.Duration) model.EngineConfig {
	config := model.EngineConfig{
		TickInterval:      tickInterval,
		RemoveCompleted:   settings.RemoveCompleted,
		IdleCheckInterval: 5 * time.Second,
	}
	if settings.IdlePauseEnabled {
		config.IdlePauseAfter = settings.IdlePauseAfter
	}
	return config
}
