package cmd

import (
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"lukechampine.com/uint128"

	"github.com/saltedpow/pow/shared"
)

var difficultyFlags struct {
	average   string
	threshold string
}

// difficultyCmd represents the difficulty command.
var difficultyCmd = &cobra.Command{
	Use:   "difficulty",
	Short: "Convert between average attempts and thresholds",
	Long: `Converts an average number of attempts into the threshold a score must reach,
or a threshold back into the average number of attempts it takes:

	threshold = MAX - MAX / average
	average   = MAX / (MAX - threshold)

where MAX is the largest 128 bit number.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var threshold shared.Threshold
		switch {
		case difficultyFlags.average != "":
			avg, err := shared.ParseAverage(difficultyFlags.average)
			if err != nil {
				return err
			}
			threshold, err = shared.ThresholdFromAverage(avg)
			if err != nil {
				return err
			}
		case difficultyFlags.threshold != "":
			var err error
			threshold, err = shared.ParseThreshold(difficultyFlags.threshold)
			if err != nil {
				return err
			}
		default:
			return errors.New("one of --average or --threshold is required")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "average:   %s\nthreshold: %s\nhex:       0x%s\n",
			shared.AverageFromThreshold(threshold), threshold, threshold.Hex())
		return nil
	},
}

// difficultyTableCmd represents the difficulty table command.
var difficultyTableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print thresholds for powers of two attempts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Average", "Threshold", "Hex"})
		table.SetAlignment(tablewriter.ALIGN_RIGHT)

		for bits := uint(0); bits < 128; bits += 8 {
			threshold, err := shared.ThresholdFromAverage(shared.Average(uint128.From64(1).Lsh(bits)))
			if err != nil {
				return err
			}
			table.Append([]string{
				fmt.Sprintf("2^%d", bits),
				threshold.String(),
				"0x" + threshold.Hex(),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(difficultyCmd)
	difficultyCmd.AddCommand(difficultyTableCmd)

	difficultyCmd.Flags().StringVar(&difficultyFlags.average, "average", "", "average number of attempts")
	difficultyCmd.Flags().StringVar(&difficultyFlags.threshold, "threshold", "", "threshold, decimal or 0x prefixed hex")
	difficultyCmd.MarkFlagsMutuallyExclusive("average", "threshold")
}
