package platform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	enabled  []string
	disabled []string
	err      error
}

func (service *recordingService) GetConfigDir() (string, error) {
	return "", nil
}

func (service *recordingService) EnableAutostart(appName, execPath string) error {
	if service.err != nil {
		return service.err
	}
	service.enabled = append(service.enabled, appName+"="+execPath)
	return nil
}

func (service *recordingService) DisableAutostart(appName string) error {
	if service.err != nil {
		return service.err
	}
	service.disabled = append(service.disabled, appName)
	return nil
}

func TestLaunchAtLoginAppliesChangesOnce(t *testing.T) {
	service := &recordingService{}
	launch, err := NewLaunchAtLogin(service, "TimerDeck", nil)
	require.NoError(t, err)

	require.NoError(t, launch.Apply(true))
	require.NoError(t, launch.Apply(true))
	require.NoError(t, launch.Apply(false))
	require.NoError(t, launch.Apply(false))

	require.Len(t, service.enabled, 1)
	assert.Contains(t, service.enabled[0], "TimerDeck=")
	assert.Equal(t, []string{"TimerDeck"}, service.disabled)
}

func TestLaunchAtLoginRetriesAfterFailure(t *testing.T) {
	service := &recordingService{err: errors.New("denied")}
	launch, err := NewLaunchAtLogin(service, "TimerDeck", nil)
	require.NoError(t, err)

	require.Error(t, launch.Apply(true))

	service.err = nil
	require.NoError(t, launch.Apply(true))
	assert.Len(t, service.enabled, 1)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "timerdeck", slug("TimerDeck"))
	assert.Equal(t, "timer-deck", slug("  Timer Deck "))
	assert.Equal(t, "timerdeck", slug(""))
}
