package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saltedpow/pow/oracle"
	"github.com/saltedpow/pow/shared"
)

var scoreFlags struct {
	targetFlags
	nonce uint64
}

// scoreCmd represents the score command.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the score of a single nonce",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		salt, err := cfg.GetSalt()
		if err != nil {
			return err
		}
		target, err := scoreFlags.bytes()
		if err != nil {
			return err
		}

		score := oracle.Score(salt, target, scoreFlags.nonce)
		fmt.Fprintf(cmd.OutOrStdout(), "score:    %s\nhex:      0x%s\nattempts: %s\n",
			score, shared.Threshold(score).Hex(), shared.AverageFromThreshold(shared.Threshold(score)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreFlags.register(scoreCmd)
	scoreCmd.Flags().Uint64Var(&scoreFlags.nonce, "nonce", 1, "nonce to score")
}
