// Package surface owns the tray icon's visible state: the current
// image, the attachment flag and the popup display. Every mutation —
// from HTTP workers, from tray callbacks and from the lifecycle
// controller — goes through one mutex.
package surface

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/notifytray/notifytray/internal/logging"
	"github.com/notifytray/notifytray/internal/sound"
)

// Backend is the minimal contract the host tray must provide. The real
// implementation lives in internal/tray; tests inject fakes.
type Backend interface {
	Add(icon []byte, tooltip string) error
	SetIcon(icon []byte)
	Remove()
}

// SetupError reports that the host tray rejected icon registration.
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string { return "tray setup: " + e.Err.Error() }
func (e *SetupError) Unwrap() error { return e.Err }

// Surface wraps one tray icon.
type Surface struct {
	backend Backend
	tooltip string

	mu          sync.Mutex
	defaultIcon []byte
	current     []byte
	attached    bool

	popup      func(title, body string) error
	onShutdown func()
}

// New creates a detached surface showing the default icon.
func New(backend Backend, defaultIcon []byte, tooltip string) *Surface {
	return &Surface{
		backend:     backend,
		tooltip:     tooltip,
		defaultIcon: defaultIcon,
		current:     defaultIcon,
		popup: func(title, body string) error {
			return beeep.Notify(title, body, "")
		},
	}
}

// OnShutdown registers the action for a double click. The lifecycle
// controller injects stop-and-exit here.
func (s *Surface) OnShutdown(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onShutdown = fn
}

// SetPopup overrides the popup display. Test seam.
func (s *Surface) SetPopup(fn func(title, body string) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.popup = fn
}

// Attach registers the icon with the tray. No-op when already
// attached, so a lifecycle rebind never registers twice.
func (s *Surface) Attach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return nil
	}
	if err := s.backend.Add(s.current, s.tooltip); err != nil {
		return &SetupError{Err: err}
	}
	s.attached = true
	return nil
}

// Detach removes the icon from the tray; no-op when not attached.
func (s *Surface) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return
	}
	s.backend.Remove()
	s.attached = false
}

// Attached reports whether the icon is registered with the tray.
func (s *Surface) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

// CurrentIcon returns the image the surface is showing (or would show
// once attached).
func (s *Surface) CurrentIcon() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetImage replaces the visible icon image immediately.
func (s *Surface) SetImage(icon []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setImageLocked(icon)
}

// Reset restores the default icon. Bound to a single tray click.
func (s *Surface) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setImageLocked(s.defaultIcon)
}

// Display shows a transient popup. Best-effort: failures are logged
// and never surfaced to the request.
func (s *Surface) Display(title, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayLocked(title, body)
}

// Publish applies one notification as a unit: popup, then icon swap,
// then the optional sound. Concurrent publishers serialize here; the
// last one wins on the displayed image.
func (s *Surface) Publish(icon []byte, title, body string, trigger sound.Trigger) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.displayLocked(title, body)
	s.setImageLocked(icon)
	if trigger != nil {
		if err := trigger.Play(); err != nil {
			logging.Debugf(logging.CatSound, "sound trigger failed: %v", err)
		}
	}
}

// Click maps toolkit click counts to actions: one click clears back to
// the default icon, two or more shuts the notifier down. Counting
// clicks is the toolkit's job, not ours.
func (s *Surface) Click(count int) {
	if count >= 2 {
		s.mu.Lock()
		shutdown := s.onShutdown
		s.mu.Unlock()
		if shutdown != nil {
			shutdown()
		}
		return
	}
	s.Reset()
}

func (s *Surface) setImageLocked(icon []byte) {
	s.current = icon
	if s.attached {
		s.backend.SetIcon(icon)
	}
}

func (s *Surface) displayLocked(title, body string) {
	if err := s.popup(title, body); err != nil {
		logging.Debugf(logging.CatTray, "popup failed: %v", err)
	}
}
