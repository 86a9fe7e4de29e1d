package timers

import (
	"errors"
	"log/slog"
	"time"

	"timerdeck/internal/core/model"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// SetIdleChecker injects an idle checker.
func (scheduler *Scheduler) SetIdleChecker(checker IdleChecker) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.idleChecker = checker
	scheduler.idleDisabled = false
}

// checkIdleLocked pauses every running timer once per idle stretch.
func (scheduler *Scheduler) checkIdleLocked(now time.Time) {
	if scheduler.config.IdlePauseAfter <= 0 || scheduler.idleChecker == nil || scheduler.idleDisabled {
		return
	}
	if !scheduler.lastIdleCheck.IsZero() && now.Sub(scheduler.lastIdleCheck) < scheduler.config.IdleCheckInterval {
		return
	}
	scheduler.lastIdleCheck = now

	idleDuration, err := scheduler.idleChecker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			scheduler.idleDisabled = true
		}
		scheduler.log.Warn("idle check failed", slog.String("error", err.Error()))
		scheduler.store.publish(Event{Type: EventIdleError, Message: err.Error(), At: now})
		return
	}

	if idleDuration < scheduler.config.IdlePauseAfter {
		scheduler.idlePaused = false
		return
	}
	if scheduler.idlePaused {
		return
	}
	scheduler.idlePaused = true

	paused := scheduler.store.applyWhere(func(timers []model.Timer) []model.Timer {
		var running []model.Timer
		for _, timer := range timers {
			if timer.Status == model.StatusRunning {
				running = append(running, timer)
			}
		}
		return running
	}, model.ActionPause)
	if len(paused) == 0 {
		return
	}
	scheduler.log.Info("paused timers after idle", slog.Int("count", len(paused)), slog.Duration("idle", idleDuration))
	scheduler.store.publish(Event{Type: EventIdlePaused, Count: len(paused), Message: "idle pause", At: now})
}

func (store *Store) publish(event Event) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.emitLocked(event)
}
