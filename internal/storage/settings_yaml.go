package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"timerdeck/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	HalfwayAlerts      *bool `yaml:"halfway_alerts"`
	CompletionAlerts   *bool `yaml:"completion_alerts"`
	RemoveCompleted    bool  `yaml:"remove_completed"`
	IdlePauseEnabled   bool  `yaml:"idle_pause_enabled"`
	IdlePauseAfterMins int   `yaml:"idle_pause_after_minutes"`
	LaunchAtLogin      bool  `yaml:"launch_at_login"`
}

// LoadSettings reads user preferences from YAML inside dir.
// If the file does not exist, default settings are returned.
func LoadSettings(dir string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(filepath.Join(dir, settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML inside dir.
func SaveSettings(dir string, settings preferences.Settings) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	halfway := settings.HalfwayAlerts
	completion := settings.CompletionAlerts
	fileData := yamlSettings{
		HalfwayAlerts:      &halfway,
		CompletionAlerts:   &completion,
		RemoveCompleted:    settings.RemoveCompleted,
		IdlePauseEnabled:   settings.IdlePauseEnabled,
		IdlePauseAfterMins: int(settings.IdlePauseAfter / time.Minute),
		LaunchAtLogin:      settings.LaunchAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, settingsFileName), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.HalfwayAlerts != nil {
		settings.HalfwayAlerts = *fileData.HalfwayAlerts
	}
	if fileData.CompletionAlerts != nil {
		settings.CompletionAlerts = *fileData.CompletionAlerts
	}
	if fileData.IdlePauseAfterMins > 0 {
		settings.IdlePauseAfter = time.Duration(fileData.IdlePauseAfterMins) * time.Minute
	}

	settings.RemoveCompleted = fileData.RemoveCompleted
	settings.IdlePauseEnabled = fileData.IdlePauseEnabled
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}
