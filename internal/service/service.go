// Package service installs the notifier as a login-time autostart
// entry on the supported platforms.
package service

import "errors"

// Common errors
var (
	ErrNotInstalled     = errors.New("service is not installed")
	ErrAlreadyInstalled = errors.New("service is already installed")
	ErrUnsupported      = errors.New("autostart is not supported on this platform")
)

// Service represents a platform-specific auto-start entry.
type Service interface {
	Install() error
	Uninstall() error
	IsInstalled() bool
	Status() (string, error)
}
