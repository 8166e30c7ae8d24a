//go:build !nogui

// Package tray adapts the host system tray for the notification
// surface. The real implementation drives getlantern/systray; a nogui
// build tag swaps in a stub for headless builds.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/notifytray/notifytray/internal/logging"
)

// Clicker receives tray interactions translated to toolkit click
// counts. The systray toolkit has no raw click events, so the menu
// items stand in: "Clear notifications" is delivered as a single
// click, "Quit" as a double click.
type Clicker interface {
	Click(count int)
}

// Tray owns the systray loop. One instance per process; systray cannot
// be restarted once quit.
type Tray struct {
	mu    sync.Mutex
	ready bool
}

// New creates the tray. Run must be called before any other method has
// a visible effect.
func New() *Tray {
	return &Tray{}
}

// Run starts the systray loop on the calling goroutine (must be the
// main goroutine on macOS). onReady fires once the tray is available —
// start the HTTP listener there — and onExit fires after Quit.
func (t *Tray) Run(clicker Clicker, onReady, onExit func()) {
	systray.Run(func() {
		t.mu.Lock()
		t.ready = true
		t.mu.Unlock()

		mClear := systray.AddMenuItem("Clear notifications", "Reset the icon to the default image")
		mQuit := systray.AddMenuItem("Quit", "Stop the notifier and exit")

		go func() {
			for {
				select {
				case <-mClear.ClickedCh:
					clicker.Click(1)
				case <-mQuit.ClickedCh:
					clicker.Click(2)
				}
			}
		}()

		onReady()
	}, onExit)
}

// Add registers the icon with the tray. systray reports no registration
// errors of its own, so Add only fails on backends that do.
func (t *Tray) Add(icon []byte, tooltip string) error {
	t.mu.Lock()
	ready := t.ready
	t.mu.Unlock()

	if !ready {
		logging.Warn(logging.CatTray, "tray icon added before the loop was ready", nil)
	}
	systray.SetIcon(icon)
	systray.SetTooltip(tooltip)
	return nil
}

// SetIcon replaces the visible icon image.
func (t *Tray) SetIcon(icon []byte) {
	systray.SetIcon(icon)
}

// Remove detaches the icon. systray cannot hide an icon while its loop
// runs, so the tooltip marks the notifier as stopped instead.
func (t *Tray) Remove() {
	systray.SetTooltip("Notifier stopped")
}

// Quit ends the systray loop; Run returns afterwards.
func (t *Tray) Quit() {
	systray.Quit()
}

// Supported reports whether this build can show a tray icon.
func Supported() bool {
	return true
}
