package model

import "time"

// EngineConfig contains runtime settings for the timer engine.
type EngineConfig struct {
	TickInterval time.Duration

	// RemoveCompleted drops a timer from the active collection as soon as
	// its history entry is written.
	RemoveCompleted bool

	IdlePauseAfter    time.Duration
	IdleCheckInterval time.Duration
}
