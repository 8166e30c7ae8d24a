//go:build !windows && !linux

package service

type stubService struct{}

// New creates a new platform-specific service manager
func New() Service {
	return &stubService{}
}

func (s *stubService) Install() error   { return ErrUnsupported }
func (s *stubService) Uninstall() error { return ErrUnsupported }
func (s *stubService) IsInstalled() bool {
	return false
}

func (s *stubService) Status() (string, error) {
	return "", ErrUnsupported
}
