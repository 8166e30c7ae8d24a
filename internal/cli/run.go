package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notifytray/notifytray/internal/assets"
	"github.com/notifytray/notifytray/internal/config"
	"github.com/notifytray/notifytray/internal/logging"
	"github.com/notifytray/notifytray/internal/notifier"
	"github.com/notifytray/notifytray/internal/sound"
	"github.com/notifytray/notifytray/internal/surface"
	"github.com/notifytray/notifytray/internal/tray"
	"github.com/notifytray/notifytray/internal/welcome"
)

// runRelay wires the relay together and blocks until the tray loop
// ends. Construction-time failures (no tray, missing default icon) and
// bind failures surface as errors, which main turns into a nonzero
// exit.
func runRelay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if !tray.Supported() {
		return errors.New("system tray not supported")
	}
	defaultIcon, err := assets.Resolve(cfg.Icon)
	if err != nil {
		return fmt.Errorf("wrong default icon %q: %w", cfg.Icon, err)
	}

	tr := tray.New()
	surf := surface.New(tr, defaultIcon, tooltip(cfg))

	trigger := sound.Resolve(cfg.Sound)
	if trigger == nil {
		logging.Infof(logging.CatSound, "sound property %q not available, notifications stay silent", cfg.Sound)
	}

	n := notifier.New(cfg, surf, trigger)

	// Double click: stop the lifecycle and end the tray loop; main
	// then returns with exit code 0.
	surf.OnShutdown(func() {
		n.Stop()
		tr.Quit()
	})

	var startErr error
	tr.Run(surf, func() {
		if err := n.Start(); err != nil {
			startErr = err
			tr.Quit()
			return
		}
		if welcome.IsFirstRun() {
			welcome.ShowWelcome(n.Addr())
			_ = welcome.MarkAsShown() // non-critical
		}
	}, func() {
		n.Stop()
	})

	return startErr
}

func tooltip(cfg *config.Config) string {
	return fmt.Sprintf("Notifier on port %d\n- click to remove events\n- double-click to exit", cfg.Port)
}
