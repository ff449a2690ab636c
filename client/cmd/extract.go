package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/natives"
)

var extractChallenge challengeInput

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Derives the account address and key fragment from a challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		challenge, err := extractChallenge.bytes()
		if err != nil {
			return err
		}

		address, fragment, err := natives.ExtractAddressFromChallenge(challenge)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "address:  %s\n", address.Hex())
		fmt.Fprintf(cmd.OutOrStdout(), "fragment: 0x%s\n", hex.EncodeToString(fragment[:]))
		return nil
	},
}

func init() {
	extractChallenge.register(extractCmd)
	rootCmd.AddCommand(extractCmd)
}
