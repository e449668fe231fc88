package cmd

import (
	"github.com/spf13/cobra"
)

const (
	VERSION string = "2.0.0"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show asset-info version",
	Long:  ``,
	// No config is needed to print the version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		UI.Info("Version: %s", VERSION)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
