// Package pow tags values with salted SHA-256 proofs of work.
//
// A proof for a target is a nonce together with the score
//
//	SHA256(salt || encode(target) || nonce)[:16]
//
// read as a big-endian 128 bit number. A proof is valid when the recorded score
// matches the recomputed one, and sufficient when the score reaches a threshold.
// Thresholds are usually derived from the average number of attempts a proof
// should take, see Difficulty.
package pow

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/saltedpow/pow/config"
	"github.com/saltedpow/pow/proving"
	"github.com/saltedpow/pow/shared"
	"github.com/saltedpow/pow/verifying"
)

type (
	Score     = shared.Score
	Threshold = shared.Threshold
	Average   = shared.Average
	Salt      = shared.Salt
)

var (
	ErrMissingSalt            = shared.ErrMissingSalt
	ErrInvalidDifficulty      = shared.ErrInvalidDifficulty
	ErrSearchExhausted        = shared.ErrSearchExhausted
	ErrInvalidProof           = shared.ErrInvalidProof
	ErrInsufficientDifficulty = shared.ErrInsufficientDifficulty
)

// Config binds a salt to the proving and verifying functions.
// It is immutable after New and safe for concurrent use.
type Config struct {
	salt    *shared.Salt
	logger  *zap.Logger
	workers uint
}

type Option func(*Config) error

// WithSalt sets the salt. The bytes are copied.
func WithSalt(salt []byte) Option {
	return func(c *Config) error {
		s := shared.NewSalt(salt)
		c.salt = &s
		return nil
	}
}

// WithSaltString sets the salt to the bytes of s.
func WithSaltString(s string) Option {
	return func(c *Config) error {
		salt := shared.SaltFromString(s)
		c.salt = &salt
		return nil
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return errors.New("`logger` is required")
		}
		c.logger = logger
		return nil
	}
}

// WithWorkers sets how many goroutines search for a nonce. The default is 1.
func WithWorkers(workers uint) Option {
	return func(c *Config) error {
		if workers == 0 {
			return errors.New("`workers` must be greater than 0")
		}
		c.workers = workers
		return nil
	}
}

// New returns a Config. A salt is required.
func New(opts ...Option) (*Config, error) {
	c := &Config{
		logger:  zap.NewNop(),
		workers: 1,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.salt == nil {
		return nil, ErrMissingSalt
	}
	return c, nil
}

// FromConfig builds a Config from a loaded configuration file.
func FromConfig(cfg *config.Config, logger *zap.Logger) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	salt, err := cfg.GetSalt()
	if err != nil {
		return nil, err
	}
	return New(
		WithSalt(salt.Bytes()),
		WithLogger(logger),
		WithWorkers(cfg.Workers),
	)
}

// Salt returns the configured salt.
func (c *Config) Salt() Salt {
	return *c.salt
}

// Difficulty returns the threshold for which a proof takes average attempts on average.
func Difficulty(average uint64) (Threshold, error) {
	return shared.ThresholdFromAverage(shared.NewAverage(average))
}

// ProveWork searches for a proof over target that reaches threshold.
func ProveWork[T any](ctx context.Context, c *Config, target T, threshold Threshold) (*shared.Proof[T], error) {
	return proving.Generate(ctx, *c.salt, target, threshold,
		proving.WithLogger(c.logger),
		proving.WithWorkers(c.workers),
	)
}

// ProveWorkSerialized is like ProveWork for an already encoded target.
func ProveWorkSerialized[T any](ctx context.Context, c *Config, encoded []byte, threshold Threshold) (*shared.Proof[T], error) {
	return proving.GenerateSerialized[T](ctx, *c.salt, encoded, threshold,
		proving.WithLogger(c.logger),
		proving.WithWorkers(c.workers),
	)
}

// Calculate recomputes the score of proof for target.
func Calculate[T any](c *Config, proof shared.Proof[T], target T) (Score, error) {
	return verifying.Calculate(proof, target, *c.salt)
}

// IsValidProof reports whether proof was produced for target under the configured salt.
func IsValidProof[T any](c *Config, proof shared.Proof[T], target T) bool {
	return verifying.IsValid(proof, target, *c.salt)
}

// IsSufficientDifficulty reports whether the proof's score reaches threshold.
func IsSufficientDifficulty[T any](proof shared.Proof[T], threshold Threshold) bool {
	return verifying.MeetsDifficulty(proof, threshold)
}

// Verify checks that proof is valid for target and reaches threshold.
func Verify[T any](c *Config, proof shared.Proof[T], target T, threshold Threshold) error {
	return verifying.Verify(proof, target, *c.salt, threshold, verifying.WithLogger(c.logger))
}
