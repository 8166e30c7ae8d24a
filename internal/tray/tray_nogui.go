//go:build nogui

package tray

import "sync"

// Clicker receives tray interactions translated to toolkit click
// counts. Unused in nogui builds.
type Clicker interface {
	Click(count int)
}

// Tray is a stub for headless builds. Supported() returns false, so
// the notifier refuses to start; the stub only keeps the package
// compiling.
type Tray struct {
	quitOnce sync.Once
	quit     chan struct{}
}

func New() *Tray {
	return &Tray{quit: make(chan struct{})}
}

func (t *Tray) Run(clicker Clicker, onReady, onExit func()) {
	onReady()
	<-t.quit
	onExit()
}

func (t *Tray) Add(icon []byte, tooltip string) error { return nil }

func (t *Tray) SetIcon(icon []byte) {}

func (t *Tray) Remove() {}

func (t *Tray) Quit() {
	t.quitOnce.Do(func() { close(t.quit) })
}

// Supported reports whether this build can show a tray icon.
func Supported() bool {
	return false
}
