package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/dtf/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dtf %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
