package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notifytray/notifytray/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the notifytray version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("notifytray", buildinfo.Short())
	},
}
