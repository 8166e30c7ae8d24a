package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notifytray/notifytray/internal/service"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the login-time autostart entry",
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Start the notifier automatically on login",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := service.New().Install(); err != nil {
			return err
		}
		fmt.Println("Autostart installed.")
		return nil
	},
}

var serviceUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the autostart entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := service.New().Uninstall(); err != nil {
			return err
		}
		fmt.Println("Autostart removed.")
		return nil
	},
}

var serviceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the autostart status",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := service.New().Status()
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil
	},
}

func init() {
	serviceCmd.AddCommand(serviceInstallCmd)
	serviceCmd.AddCommand(serviceUninstallCmd)
	serviceCmd.AddCommand(serviceStatusCmd)
}
