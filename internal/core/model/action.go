package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction indicates an action value outside the supported set.
var ErrUnknownAction = errors.New("unknown timer action")

// Action is a control command that can be applied to a timer.
type Action int

const (
	ActionStart Action = iota + 1
	ActionPause
	ActionReset
)

// Actions lists every supported action in display order.
var Actions = []Action{ActionStart, ActionPause, ActionReset}

// ParseAction converts a command name such as "start" into an Action.
func ParseAction(value string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "start":
		return ActionStart, nil
	case "pause":
		return ActionPause, nil
	case "reset":
		return ActionReset, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, value)
}

// Valid reports whether the action is one of the known commands.
func (action Action) Valid() bool {
	switch action {
	case ActionStart, ActionPause, ActionReset:
		return true
	}
	return false
}

func (action Action) String() string {
	switch action {
	case ActionStart:
		return "start"
	case ActionPause:
		return "pause"
	case ActionReset:
		return "reset"
	}
	return fmt.Sprintf("action(%d)", int(action))
}
