//go:build windows

package sound

import "golang.org/x/sys/windows"

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	procMessageBeep = user32.NewProc("MessageBeep")
)

// MessageBeep sound type constants (winuser.h).
const (
	mbOK          = 0x00000000
	mbIconHand    = 0x00000010
	mbIconQuery   = 0x00000020
	mbIconWarning = 0x00000030
	mbIconInfo    = 0x00000040
)

// beepKinds maps desktop property names to MessageBeep sound types.
var beepKinds = map[string]uintptr{
	"win.sound.default":     mbOK,
	"win.sound.hand":        mbIconHand,
	"win.sound.question":    mbIconQuery,
	"win.sound.exclamation": mbIconWarning,
	"win.sound.asterisk":    mbIconInfo,
}

type messageBeep struct {
	kind uintptr
}

func resolve(property string) Trigger {
	kind, ok := beepKinds[property]
	if !ok {
		return nil
	}
	return &messageBeep{kind: kind}
}

func (m *messageBeep) Play() error {
	ret, _, err := procMessageBeep.Call(m.kind)
	if ret == 0 {
		return err
	}
	return nil
}
