package platform

import (
	"fmt"
	"os/exec"
	"time"

	"timerdeck/internal/core/timers"
)

// idleProvider shells out to xprintidle, which only sees X11 sessions.
type idleProvider struct {
	xprintidlePath string
}

func newIdleProvider() timers.IdleChecker {
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedIdleProvider{reason: "xprintidle not installed"}
	}
	return &idleProvider{xprintidlePath: path}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.xprintidlePath).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(string(output))
}
