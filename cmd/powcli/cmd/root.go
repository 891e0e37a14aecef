package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/saltedpow/pow/config"
)

var (
	// Version is the version of the binary.
	Version = "0.0.0"

	// Commit is the commit hash of the binary.
	Commit = ""

	cfgFile string
	cfg     = config.DefaultConfig()
	logger  = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "powcli",
	Short: "Create and check salted proofs of work",
	Long: `powcli tags arbitrary targets with salted SHA-256 proofs of work.

A proof is a nonce and the score it yields for the target. Verifiers recompute the
score from the shared salt and accept the proof if it matches and reaches the
required threshold. Difficulty is usually given as the average number of attempts.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", config.DefaultConfigFile, "path to the configuration file")
	flags.String("salt", "", "salt shared by provers and verifiers, hex if prefixed with 0x")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
}

// loadConfig merges, in increasing priority, the defaults, the configuration file,
// POWCLI_ environment variables and the command line flags into cfg.
func loadConfig(cmd *cobra.Command, _ []string) error {
	vip := viper.New()
	vip.SetEnvPrefix("POWCLI")
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	if err := loadConfigFile(cmd.Flags(), vip); err != nil {
		return err
	}

	if err := vip.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if err := vip.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	// Flags win over a conflicting setting from the file or environment.
	switch {
	case cmd.Flags().Changed("threshold"):
		cfg.Difficulty = ""
	case cmd.Flags().Changed("difficulty"):
		cfg.Threshold = ""
	}

	lvl, err := cfg.GetLogLevel()
	if err != nil {
		return err
	}
	logger, err = newLogger(lvl)
	return err
}

func loadConfigFile(flags *pflag.FlagSet, vip *viper.Viper) error {
	fileLocation := smutil.GetCanonicalPath(cfgFile)
	vip.SetConfigFile(fileLocation)
	err := vip.ReadInConfig()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist) && !flags.Changed("config"):
		// The default configuration file is optional.
		return nil
	default:
		return fmt.Errorf("failed to read config file %s: %w", fileLocation, err)
	}
}

func newLogger(lvl zapcore.Level) (*zap.Logger, error) {
	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(lvl),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize zap logger: %w", err)
	}
	return logger, nil
}

// targetFlags are shared by the commands that operate on a target.
type targetFlags struct {
	target string
	hex    bool
}

func (f *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.target, "target", "", "the value the proof is bound to")
	cmd.Flags().BoolVar(&f.hex, "hex", false, "decode --target as hex")
	_ = cmd.MarkFlagRequired("target")
}

func (f *targetFlags) bytes() ([]byte, error) {
	if !f.hex {
		return []byte(f.target), nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(f.target, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid --target hex: %w", err)
	}
	return b, nil
}

// registerDifficultyFlags adds the mutually exclusive --difficulty and --threshold flags.
func registerDifficultyFlags(cmd *cobra.Command) {
	cmd.Flags().String("difficulty", "", "average number of attempts a proof takes")
	cmd.Flags().String("threshold", "", "minimum score, decimal or 0x prefixed hex")
	cmd.MarkFlagsMutuallyExclusive("difficulty", "threshold")
}
