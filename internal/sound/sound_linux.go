//go:build linux

package sound

import (
	"os"
	"os/exec"
)

const soundThemeDir = "/usr/share/sounds/freedesktop/stereo"

// soundFiles maps desktop property names to freedesktop sound theme
// events.
var soundFiles = map[string]string{
	"win.sound.default":     soundThemeDir + "/bell.oga",
	"win.sound.hand":        soundThemeDir + "/dialog-error.oga",
	"win.sound.question":    soundThemeDir + "/message.oga",
	"win.sound.exclamation": soundThemeDir + "/dialog-warning.oga",
	"win.sound.asterisk":    soundThemeDir + "/dialog-information.oga",
}

type paplaySound struct {
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
	if _, err := exec.LookPath("paplay"); err != nil {
		return nil
	}
	return &paplaySound{path: path}
}

func (p *paplaySound) Play() error {
	return exec.Command("paplay", p.path).Run()
}
