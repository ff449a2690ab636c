package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/config"
)

var configDirectory string
var GateConfig *config.Config
var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:           "vdfgate",
	Short:         "VDF proof verification gateway",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		GateConfig, err = config.LoadConfig(configDirectory)
		if err != nil {
			return errors.Wrapf(err, "invalid config directory: %s", configDirectory)
		}

		logger, err = GateConfig.NewLogger()
		if err != nil {
			return err
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}

// challengeInput is the pair of flags every command accepts to name a
// challenge: raw hex, or a seed string hashed with SHA3-256.
type challengeInput struct {
	hex  string
	seed string
}

func (c *challengeInput) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.hex, "challenge", "", "challenge bytes as hex")
	cmd.Flags().StringVar(
		&c.seed,
		"seed",
		"",
		"derive the challenge as the SHA3-256 of this string",
	)
}

func (c *challengeInput) bytes() ([]byte, error) {
	if c.hex != "" && c.seed != "" {
		return nil, errors.New("use only one of --challenge and --seed")
	}

	if c.seed != "" {
		digest := sha3.Sum256([]byte(c.seed))
		return digest[:], nil
	}

	if c.hex == "" {
		return nil, errors.New("one of --challenge or --seed is required")
	}

	return decodeHex(c.hex)
}

func decodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "decode hex")
	}

	return b, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configDirectory,
		"config",
		".config/",
		"config directory (default is .config/)",
	)
}
