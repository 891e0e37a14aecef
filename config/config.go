package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/cpu"
	"github.com/spacemeshos/smutil"
	"go.uber.org/zap/zapcore"

	"github.com/saltedpow/pow/shared"
)

const (
	DefaultConfigDirName  = ".powcli"
	DefaultConfigFileName = "config.toml"

	// DefaultDifficulty is the average number of attempts used when neither a difficulty nor a threshold is set.
	DefaultDifficulty = "65536"
	DefaultLogLevel   = "info"

	MaxWorkers = 1024
)

var DefaultConfigFile = filepath.Join(smutil.GetUserHomeDirectory(), DefaultConfigDirName, DefaultConfigFileName)

type Config struct {
	// Salt is taken verbatim unless prefixed with 0x, in which case it is hex decoded.
	Salt string `mapstructure:"salt"`

	// Difficulty is the average number of attempts a proof should take.
	Difficulty string `mapstructure:"difficulty"`
	// Threshold is the raw minimum score. Mutually exclusive with Difficulty.
	Threshold string `mapstructure:"threshold"`

	Workers  uint   `mapstructure:"workers"`
	LogLevel string `mapstructure:"log-level"`
}

func DefaultConfig() *Config {
	return &Config{
		Workers:  DefaultWorkers(),
		LogLevel: DefaultLogLevel,
	}
}

// DefaultWorkers returns the number of physical cores, or the number of logical CPUs if that is unknown.
func DefaultWorkers() uint {
	n, err := cpu.Counts(false)
	if err != nil || n < 1 {
		n = runtime.NumCPU()
	}
	return uint(n)
}

func (cfg *Config) Validate() error {
	if cfg.Workers == 0 || cfg.Workers > MaxWorkers {
		return fmt.Errorf("invalid `Workers`; expected: 1 - %d, given: %d", MaxWorkers, cfg.Workers)
	}

	if cfg.Difficulty != "" && cfg.Threshold != "" {
		return errors.New("invalid config: `Difficulty` and `Threshold` are mutually exclusive")
	}

	if _, err := cfg.GetThreshold(); err != nil {
		return err
	}

	if _, err := cfg.GetLogLevel(); err != nil {
		return err
	}

	if strings.HasPrefix(cfg.Salt, "0x") {
		if _, err := hex.DecodeString(cfg.Salt[2:]); err != nil {
			return fmt.Errorf("invalid `Salt` hex: %w", err)
		}
	}

	return nil
}

// GetSalt returns the configured salt. An unset salt is an error.
func (cfg *Config) GetSalt() (shared.Salt, error) {
	if cfg.Salt == "" {
		return shared.Salt{}, shared.ErrMissingSalt
	}
	if strings.HasPrefix(cfg.Salt, "0x") {
		b, err := hex.DecodeString(cfg.Salt[2:])
		if err != nil {
			return shared.Salt{}, fmt.Errorf("invalid `Salt` hex: %w", err)
		}
		return shared.NewSalt(b), nil
	}
	return shared.SaltFromString(cfg.Salt), nil
}

// GetThreshold resolves the threshold from either Threshold or Difficulty, falling back to DefaultDifficulty.
func (cfg *Config) GetThreshold() (shared.Threshold, error) {
	if cfg.Threshold != "" {
		return shared.ParseThreshold(cfg.Threshold)
	}

	difficulty := cfg.Difficulty
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	avg, err := shared.ParseAverage(difficulty)
	if err != nil {
		return shared.Threshold{}, err
	}
	return shared.ThresholdFromAverage(avg)
}

func (cfg *Config) GetLogLevel() (zapcore.Level, error) {
	if cfg.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("invalid `LogLevel`: %w", err)
	}
	return lvl, nil
}
