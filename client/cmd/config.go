package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Performs a configuration operation",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Resets config.yml in the config directory to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveConfig(configDirectory, config.DefaultConfig()); err != nil {
			return errors.Wrap(err, "config init")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote defaults to %s\n", configDirectory)
		return nil
	},
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Prints the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(GateConfig)
		if err != nil {
			return errors.Wrap(err, "config print")
		}

		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPrintCmd)
	rootCmd.AddCommand(configCmd)
}
