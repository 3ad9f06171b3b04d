package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const VERSION = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show pikchain version",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pikchain version: %s\n", VERSION)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
