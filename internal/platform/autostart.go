package platform

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// LaunchAtLogin keeps the login item in line with the user's preference.
type LaunchAtLogin struct {
	service  Service
	appName  string
	execPath string
	log      *slog.Logger
	enabled  *bool
}

// NewLaunchAtLogin resolves the running executable for appName.
func NewLaunchAtLogin(service Service, appName string, log *slog.Logger) (*LaunchAtLogin, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("launch at login: resolve executable: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &LaunchAtLogin{service: service, appName: appName, execPath: execPath, log: log}, nil
}

// Apply registers or removes the login item. Repeating the last applied
// state is a no-op.
func (launch *LaunchAtLogin) Apply(enabled bool) error {
	if launch.enabled != nil && *launch.enabled == enabled {
		return nil
	}
	var err error
	if enabled {
		err = launch.service.EnableAutostart(launch.appName, launch.execPath)
	} else {
		err = launch.service.DisableAutostart(launch.appName)
	}
	if err != nil {
		return err
	}
	launch.enabled = &enabled
	launch.log.Info("launch at login updated", slog.Bool("enabled", enabled))
	return nil
}

// slug turns a display name into a lowercase identifier for file names
// and launch agent labels.
func slug(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		name = "timerdeck"
	}
	return strings.ReplaceAll(name, " ", "-")
}
