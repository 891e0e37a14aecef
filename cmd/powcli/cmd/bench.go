package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saltedpow/pow/codec"
	"github.com/saltedpow/pow/config"
	"github.com/saltedpow/pow/proving"
	"github.com/saltedpow/pow/shared"
	"github.com/saltedpow/pow/verifying"
)

var benchFlags struct {
	rounds     int
	targetSize uint64
}

// benchCmd represents the bench command.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure proving and verifying speed for increasing worker counts",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	registerDifficultyFlags(benchCmd)
	benchCmd.Flags().Uint("workers", config.DefaultWorkers(), "largest number of workers to measure")
	benchCmd.Flags().IntVar(&benchFlags.rounds, "rounds", 8, "proofs generated per worker count")
	benchCmd.Flags().Uint64Var(&benchFlags.targetSize, "target-size", 64, "target size in bytes")
}

type benchCase struct {
	workers uint
	prove   time.Duration
	verify  time.Duration
	nonces  uint64
}

func runBench(cmd *cobra.Command, _ []string) error {
	if benchFlags.rounds < 1 {
		return fmt.Errorf("invalid --rounds; expected: >= 1, given: %d", benchFlags.rounds)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	threshold, err := cfg.GetThreshold()
	if err != nil {
		return err
	}
	salt, err := cfg.GetSalt()
	if errors.Is(err, shared.ErrMissingSalt) {
		salt = shared.SaltFromString("powcli bench")
	} else if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("cli: bench config",
		zap.Stringer("average", shared.AverageFromThreshold(threshold)),
		zap.String("target_size", bytefmt.ByteSize(benchFlags.targetSize)),
		zap.Int("rounds", benchFlags.rounds),
	)

	body := make([]byte, benchFlags.targetSize)
	var cases []benchCase
	for workers := uint(1); workers <= cfg.Workers; workers *= 2 {
		c := benchCase{workers: workers}
		for round := 0; round < benchFlags.rounds; round++ {
			target := codec.Pair[uint64, codec.Bytes]{First: uint64(round), Second: body}

			t := time.Now()
			proof, err := proving.Generate(ctx, salt, target, threshold, proving.WithWorkers(workers))
			if err != nil {
				return err
			}
			c.prove += time.Since(t)
			c.nonces += proof.Nonce

			t = time.Now()
			if err := verifying.Verify(*proof, target, salt, threshold); err != nil {
				return err
			}
			c.verify += time.Since(t)
		}
		logger.Info("cli: bench case completed", zap.Uint("workers", workers), zap.Duration("elapsed", c.prove+c.verify))
		cases = append(cases, c)
	}

	report(cmd, cases)
	return nil
}

func report(cmd *cobra.Command, cases []benchCase) {
	data := make([][]string, 0, len(cases))
	for _, c := range cases {
		rounds := time.Duration(benchFlags.rounds)
		data = append(data, []string{
			strconv.FormatUint(uint64(c.workers), 10),
			(c.prove / rounds).Round(time.Microsecond).String(),
			(c.verify / rounds).Round(time.Microsecond).String(),
			strconv.FormatUint(c.nonces/uint64(benchFlags.rounds), 10),
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nBENCHMARKS: target=%v rounds=%d\n", bytefmt.ByteSize(benchFlags.targetSize), benchFlags.rounds)
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"workers", "prove", "verify", "avg-nonce"})
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
}
