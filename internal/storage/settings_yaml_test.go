package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timerdeck/internal/ui/preferences"
)

func TestLoadSettingsDefaultsWhenMissing(t *testing.T) {
	settings, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config")
	saved := preferences.Settings{
		HalfwayAlerts:    false,
		CompletionAlerts: true,
		RemoveCompleted:  true,
		IdlePauseEnabled: true,
		IdlePauseAfter:   25 * time.Minute,
		LaunchAtLogin:    true,
	}
	require.NoError(t, SaveSettings(dir, saved))

	loaded, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadSettingsKeepsAlertDefaultsWhenOmitted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte("remove_completed: true\n"), 0o644))

	settings, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.True(t, settings.HalfwayAlerts)
	assert.True(t, settings.CompletionAlerts)
	assert.True(t, settings.RemoveCompleted)
	assert.Equal(t, 10*time.Minute, settings.IdlePauseAfter)
}

func TestLoadSettingsRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte("halfway_alerts: [\n"), 0o644))

	settings, err := LoadSettings(dir)
	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}
