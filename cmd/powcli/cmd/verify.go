package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saltedpow/pow/codec"
	"github.com/saltedpow/pow/shared"
	"github.com/saltedpow/pow/verifying"
)

var verifyFlags struct {
	targetFlags
	proof string
}

// verifyCmd represents the verify command.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a proof of work against a target",
	Long: `Recomputes the score of the proof for the target and checks that it matches
the recorded score and reaches the threshold. Exits with status 1 if the proof is rejected.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyFlags.register(verifyCmd)
	registerDifficultyFlags(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyFlags.proof, "proof", "", "hex encoded proof as printed by prove")
	_ = verifyCmd.MarkFlagRequired("proof")
}

func runVerify(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	salt, err := cfg.GetSalt()
	if err != nil {
		return err
	}
	threshold, err := cfg.GetThreshold()
	if err != nil {
		return err
	}
	target, err := verifyFlags.bytes()
	if err != nil {
		return err
	}

	proof, err := shared.ParseProof[codec.Bytes](strings.TrimSpace(verifyFlags.proof))
	if err != nil {
		return fmt.Errorf("invalid --proof: %w", err)
	}

	err = verifying.Verify(proof, codec.Bytes(target), salt, threshold, verifying.WithLogger(logger))
	switch {
	case errors.Is(err, shared.ErrInvalidProof), errors.Is(err, shared.ErrInsufficientDifficulty):
		logger.Info("cli: proof rejected", zap.Uint64("nonce", proof.Nonce), zap.Error(err))
		return fmt.Errorf("proof rejected: %w", err)
	case err != nil:
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "valid: nonce %d, score %s\n", proof.Nonce, proof.Score)
	return nil
}
