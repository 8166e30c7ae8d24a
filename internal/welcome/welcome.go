// Package welcome shows a one-time popup on the first run.
package welcome

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gen2brain/beeep"
)

const markerFileName = ".notifytray-welcomed"

// getMarkerPath returns the path to the first-run marker file
func getMarkerPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "notifytray", markerFileName), nil
}

// IsFirstRun checks if this is the first time the app is running
func IsFirstRun() bool {
	markerPath, err := getMarkerPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(markerPath)
	return os.IsNotExist(err)
}

// MarkAsShown creates the marker file to indicate welcome has been shown
func MarkAsShown() error {
	markerPath, err := getMarkerPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(markerPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(markerPath)
	if err != nil {
		return err
	}
	return f.Close()
}

// ShowWelcome explains how to reach the notifier. Best-effort.
func ShowWelcome(addr string) {
	body := fmt.Sprintf(
		"Notifier is running. POST text to http://%s/<icon> to show a notification.", addr)
	_ = beeep.Notify("NotifyTray", body, "")
}
