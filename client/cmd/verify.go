package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/natives"
)

var verifyChallenge challengeInput
var verifySolution string
var verifyDifficulty uint64
var verifySecurity uint64
var verifyWesolowski bool

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verifies a VDF solution against a challenge",
	Long: `Verifies a VDF solution against a challenge.

Prints true or false. Parameters above the verification limits are reported
as an error without attempting verification.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		challenge, err := verifyChallenge.bytes()
		if err != nil {
			return err
		}

		solution, err := decodeHex(verifySolution)
		if err != nil {
			return errors.Wrap(err, "solution")
		}

		valid, err := natives.Verify(
			challenge,
			solution,
			verifyDifficulty,
			verifySecurity,
			verifyWesolowski,
		)
		if err != nil {
			return errors.Wrap(err, "verify")
		}

		logger.Debug(
			"verified",
			zap.Binary("challenge", challenge),
			zap.Uint64("difficulty", verifyDifficulty),
			zap.Uint64("security", verifySecurity),
			zap.Bool("wesolowski", verifyWesolowski),
			zap.Bool("valid", valid),
		)

		fmt.Fprintln(cmd.OutOrStdout(), valid)
		return nil
	},
}

func init() {
	verifyChallenge.register(verifyCmd)
	verifyCmd.Flags().StringVar(&verifySolution, "solution", "", "solution bytes as hex")
	verifyCmd.Flags().Uint64Var(&verifyDifficulty, "difficulty", 0, "number of sequential squarings")
	verifyCmd.Flags().Uint64Var(&verifySecurity, "security", 2048, "discriminant size in bits")
	verifyCmd.Flags().BoolVar(&verifyWesolowski, "wesolowski", false, "verify a Wesolowski proof instead of Pietrzak")
	rootCmd.AddCommand(verifyCmd)
}
