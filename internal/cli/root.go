// Package cli implements the notifytray commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/notifytray/notifytray/internal/config"
)

var (
	flagConfig string
	flagHost   string
	flagPort   int
	flagIcon   string
	flagSound  string
)

var rootCmd = &cobra.Command{
	Use:   "notifytray",
	Short: "Relay local HTTP requests to desktop tray notifications",
	Long: `NotifyTray runs a loopback HTTP server next to a system tray icon.
Each request to /<icon> shows a desktop notification with the request
body as its text, swaps the tray icon image and optionally plays a
system sound. Scripts and build tools use it to surface asynchronous
events as desktop popups.`,
	RunE:          runRelay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a JSON config file")
	rootCmd.Flags().StringVar(&flagHost, "host", config.DefaultHost, "address to bind")
	rootCmd.Flags().IntVar(&flagPort, "port", config.DefaultPort, "port to bind")
	rootCmd.Flags().StringVar(&flagIcon, "icon", config.DefaultIcon, "default icon name")
	rootCmd.Flags().StringVar(&flagSound, "sound", config.DefaultSound, "desktop sound property to play per notification")

	rootCmd.AddCommand(serviceCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig merges the config file, environment and any flags set on
// this invocation. Flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("host") {
		cfg.Host = flagHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = flagPort
	}
	if cmd.Flags().Changed("icon") {
		cfg.Icon = flagIcon
	}
	if cmd.Flags().Changed("sound") {
		cfg.Sound = flagSound
	}
	cfg.Normalize()

	return cfg, nil
}
