// Package sound resolves a desktop sound property name to a playable
// notification sound. Property names follow the Windows desktop
// property convention ("win.sound.asterisk" etc.) and are mapped to
// whatever the host platform offers.
package sound

// Trigger plays the resolved notification sound once. Play is
// best-effort; callers log failures and move on.
type Trigger interface {
	Play() error
}

// Resolve looks the property up once. It returns nil when the property
// is unknown or the platform has no way to play it; callers treat a
// nil Trigger as "no sound configured".
func Resolve(property string) Trigger {
	if property == "" {
		return nil
	}
	return resolve(property)
}
