package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/saltedpow/pow/shared"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "config file: %s\n", cfgFile)

		printable := *cfg
		if salt, err := cfg.GetSalt(); err == nil {
			printable.Salt = salt.String()
		}
		spew.Fdump(out, printable)

		if err := cfg.Validate(); err != nil {
			return err
		}
		threshold, err := cfg.GetThreshold()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "threshold: 0x%s (average %s)\n", threshold.Hex(), shared.AverageFromThreshold(threshold))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
