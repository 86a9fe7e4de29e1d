package timers

import (
	"fmt"
	"log/slog"

	"timerdeck/internal/core/model"
)

// Dispatcher applies one action to a whole category through the store's
// per-timer rule, so bulk and single controls behave identically.
type Dispatcher struct {
	store *Store
	log   *slog.Logger
}

// NewDispatcher creates a dispatcher bound to store.
func NewDispatcher(store *Store, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{store: store, log: log}
}

// BulkAction applies action to every timer whose category equals category
// exactly and returns how many timers changed. Start only moves paused
// timers with time left, pause only running ones, reset applies to all.
func (dispatcher *Dispatcher) BulkAction(category string, action model.Action) (int, error) {
	if !action.Valid() {
		return 0, fmt.Errorf("%w: %v", model.ErrUnknownAction, action)
	}
	changed := dispatcher.store.applyWhere(func(timers []model.Timer) []model.Timer {
		return IndexByCategory(timers)[category]
	}, action)

	dispatcher.log.Info("bulk action applied",
		slog.String("category", category),
		slog.String("action", action.String()),
		slog.Int("changed", len(changed)),
	)
	return len(changed), nil
}

// BulkActionAll applies action to every timer regardless of category.
func (dispatcher *Dispatcher) BulkActionAll(action model.Action) (int, error) {
	if !action.Valid() {
		return 0, fmt.Errorf("%w: %v", model.ErrUnknownAction, action)
	}
	changed := dispatcher.store.applyWhere(func(timers []model.Timer) []model.Timer {
		return timers
	}, action)

	dispatcher.log.Info("bulk action applied to all timers",
		slog.String("action", action.String()),
		slog.Int("changed", len(changed)),
	)
	return len(changed), nil
}
