package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the vdfgate version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetVersionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
