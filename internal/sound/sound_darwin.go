//go:build darwin

package sound

import (
	"os"
	"os/exec"
)

// soundFiles maps desktop property names to the closest macOS system
// sound.
var soundFiles = map[string]string{
	"win.sound.default":     "/System/Library/Sounds/Tink.aiff",
	"win.sound.hand":        "/System/Library/Sounds/Basso.aiff",
	"win.sound.question":    "/System/Library/Sounds/Ping.aiff",
	"win.sound.exclamation": "/System/Library/Sounds/Sosumi.aiff",
	"win.sound.asterisk":    "/System/Library/Sounds/Glass.aiff",
}

type afplaySound struct {
	path string
}

func resolve(property string) Trigger {
	path, ok := soundFiles[property]
	if !ok {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if _, err := exec.LookPath("afplay"); err != nil {
		return nil
	}
	return &afplaySound{path: path}
}

func (a *afplaySound) Play() error {
	return exec.Command("afplay", a.path).Run()
}
