package cmd

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/natives"
	"source.quilibrium.com/quilibrium/monorepo/vdfgate/vdf"
)

var solveChallenge challengeInput
var solveDifficulty uint64
var solveSecurity uint64
var solveWesolowski bool

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Computes a VDF solution for a challenge (developer tool)",
	Long: `Computes a VDF solution for a challenge.

Security and scheme default to the solver section of the config file. Solving
takes time proportional to the difficulty and can be interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		challenge, err := solveChallenge.bytes()
		if err != nil {
			return err
		}

		security := GateConfig.Solver.Security
		if cmd.Flags().Changed("security") {
			security = solveSecurity
		}

		wesolowski := GateConfig.Solver.Wesolowski
		if cmd.Flags().Changed("wesolowski") {
			wesolowski = solveWesolowski
		}

		if security > natives.MaxSecurity {
			return errors.Errorf("security %d above %d", security, natives.MaxSecurity)
		}

		var scheme vdf.Scheme
		if wesolowski {
			scheme, err = natives.NewWesolowski(uint16(security))
		} else {
			scheme, err = natives.NewPietrzak(uint16(security))
		}
		if err != nil {
			return errors.Wrap(err, "solve")
		}

		logger.Info(
			"solving",
			zap.String("scheme", scheme.Name()),
			zap.Uint64("difficulty", solveDifficulty),
			zap.Uint16("security", scheme.SecurityBits()),
		)

		start := time.Now()
		solution, err := scheme.SolveContext(cmd.Context(), challenge, solveDifficulty)
		if err != nil {
			return errors.Wrap(err, "solve")
		}

		logger.Info("solved", zap.Duration("elapsed", time.Since(start)))

		fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(solution))
		return nil
	},
}

func init() {
	solveChallenge.register(solveCmd)
	solveCmd.Flags().Uint64Var(&solveDifficulty, "difficulty", 100, "number of sequential squarings")
	solveCmd.Flags().Uint64Var(&solveSecurity, "security", 512, "discriminant size in bits")
	solveCmd.Flags().BoolVar(&solveWesolowski, "wesolowski", false, "produce a Wesolowski proof instead of Pietrzak")
	rootCmd.AddCommand(solveCmd)
}
