package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/natives"
)

var batchFile string
var batchWorkers int

// batchEntry is one request in a batch file, with byte fields in hex.
type batchEntry struct {
	Challenge  string `yaml:"challenge"`
	Solution   string `yaml:"solution"`
	Difficulty uint64 `yaml:"difficulty"`
	Security   uint64 `yaml:"security"`
	Wesolowski bool   `yaml:"wesolowski"`
}

func loadBatch(path string) ([]natives.VerifyRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load batch")
	}

	entries := []batchEntry{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, "load batch")
	}

	requests := make([]natives.VerifyRequest, len(entries))
	for i, e := range entries {
		challenge, err := decodeHex(e.Challenge)
		if err != nil {
			return nil, errors.Wrapf(err, "load batch: entry %d challenge", i)
		}

		solution, err := decodeHex(e.Solution)
		if err != nil {
			return nil, errors.Wrapf(err, "load batch: entry %d solution", i)
		}

		requests[i] = natives.VerifyRequest{
			Challenge:     challenge,
			Solution:      solution,
			Difficulty:    e.Difficulty,
			Security:      e.Security,
			UseWesolowski: e.Wesolowski,
		}
	}

	return requests, nil
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Verifies every request in a YAML file concurrently",
	RunE: func(cmd *cobra.Command, args []string) error {
		requests, err := loadBatch(batchFile)
		if err != nil {
			return err
		}

		workers := GateConfig.Batch.Workers
		if cmd.Flags().Changed("workers") {
			workers = batchWorkers
		}

		logger.Debug(
			"verifying batch",
			zap.Int("requests", len(requests)),
			zap.Int("workers", workers),
		)

		results := natives.VerifyBatch(cmd.Context(), requests, workers)

		failed := 0
		for i, r := range results {
			switch {
			case r.Err != nil:
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "%d: error: %s\n", i, r.Err)
			case !r.Valid:
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "%d: false\n", i)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%d: true\n", i)
			}
		}

		if failed > 0 {
			return errors.Errorf("%d of %d requests did not verify", failed, len(results))
		}

		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "requests.yml", "YAML file of verify requests")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "maximum concurrent verifications (0 uses GOMAXPROCS)")
	rootCmd.AddCommand(batchCmd)
}
