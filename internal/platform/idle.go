package platform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"timerdeck/internal/core/timers"
)

// NewIdleProvider returns the idle checker for this platform. Platforms
// without a probe report timers.ErrIdleUnsupported, which turns the
// auto-pause off for the session.
func NewIdleProvider() timers.IdleChecker {
	return newIdleProvider()
}

type unsupportedIdleProvider struct {
	reason string
}

func (provider unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, fmt.Errorf("%s: %w", provider.reason, timers.ErrIdleUnsupported)
}

// parseIdleMillis parses xprintidle output.
func parseIdleMillis(output string) (time.Duration, error) {
	idleMillis, err := strconv.ParseInt(strings.TrimSpace(output), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	return time.Duration(max(idleMillis, 0)) * time.Millisecond, nil
}

// parseHIDIdleTime extracts HIDIdleTime (nanoseconds) from ioreg output.
func parseHIDIdleTime(output string) (time.Duration, error) {
	for line := range strings.Lines(output) {
		_, value, found := strings.Cut(line, `"HIDIdleTime" =`)
		if !found {
			continue
		}
		nanos, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
		}
		return time.Duration(max(nanos, 0)), nil
	}
	return 0, fmt.Errorf("HIDIdleTime not found: %w", timers.ErrIdleUnsupported)
}
