package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Schedule",
	Long:  `All software has versions. This is Schedule's.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Schedule %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
