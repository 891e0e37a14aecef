package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"code.cloudfoundry.org/bytefmt"
	"github.com/natefinch/atomic"
	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saltedpow/pow/codec"
	"github.com/saltedpow/pow/config"
	"github.com/saltedpow/pow/proving"
	"github.com/saltedpow/pow/shared"
)

var proveFlags struct {
	targetFlags
	json bool
	out  string
}

// proveCmd represents the prove command.
var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Search for a proof of work over a target",
	Long: `Searches for a nonce whose salted score over the target reaches the threshold.
The proof is printed as 48 hex digits: the nonce followed by the score.`,
	Args: cobra.NoArgs,
	RunE: runProve,
}

func init() {
	rootCmd.AddCommand(proveCmd)

	proveFlags.register(proveCmd)
	registerDifficultyFlags(proveCmd)
	proveCmd.Flags().Uint("workers", config.DefaultWorkers(), "number of goroutines searching for a nonce")
	proveCmd.Flags().BoolVar(&proveFlags.json, "json", false, "print the proof as JSON")
	proveCmd.Flags().StringVar(&proveFlags.out, "out", "", "also write the output to this file")
}

type proveOutput struct {
	Target    string           `json:"target"`
	Threshold shared.Threshold `json:"threshold"`
	Average   shared.Average   `json:"average"`
	Nonce     uint64           `json:"nonce"`
	Score     string           `json:"score"`
	Proof     string           `json:"proof"`
}

func runProve(cmd *cobra.Command, _ []string) error {
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
	target, err := proveFlags.bytes()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("cli: searching for proof",
		zap.String("target_size", bytefmt.ByteSize(uint64(len(target)))),
		zap.Stringer("average", shared.AverageFromThreshold(threshold)),
		zap.Uint("workers", cfg.Workers),
	)
	proof, err := proving.Generate(ctx, salt, codec.Bytes(target), threshold,
		proving.WithLogger(logger),
		proving.WithWorkers(cfg.Workers),
	)
	if err != nil {
		return fmt.Errorf("failed to generate proof: %w", err)
	}

	var out bytes.Buffer
	if proveFlags.json {
		enc := json.NewEncoder(&out)
		enc.SetIndent("", "  ")
		err := enc.Encode(proveOutput{
			Target:    codec.Bytes(target).String(),
			Threshold: threshold,
			Average:   shared.AverageFromThreshold(threshold),
			Nonce:     proof.Nonce,
			Score:     proof.Score.String(),
			Proof:     proof.String(),
		})
		if err != nil {
			return err
		}
	} else {
		fmt.Fprintln(&out, proof.String())
	}

	if proveFlags.out != "" {
		path := smutil.GetCanonicalPath(proveFlags.out)
		if err := atomic.WriteFile(path, bytes.NewReader(out.Bytes())); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info("cli: proof written", zap.String("path", path))
	}

	_, err = cmd.OutOrStdout().Write(out.Bytes())
	return err
}
