package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X ...cmd.version=v1.2.3"
var version = "dev"

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fsepack version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fsepack %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
