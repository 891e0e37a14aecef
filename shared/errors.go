package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDifficulty is returned when zero average attempts is requested.
	ErrInvalidDifficulty = errors.New("invalid difficulty: average attempts must be at least 1")

	// ErrSearchExhausted is returned when the 64 bit nonce space was searched without a passing score.
	ErrSearchExhausted = errors.New("nonce space exhausted")

	// ErrInvalidProof is returned when a recomputed score does not match the score recorded in a proof.
	ErrInvalidProof = errors.New("proof score mismatch")

	// ErrInsufficientDifficulty is returned when a proof's score is below the required threshold.
	ErrInsufficientDifficulty = errors.New("insufficient difficulty")

	// ErrMissingSalt is returned when a salt is required but none was configured.
	ErrMissingSalt = errors.New("salt is required")
)

// ScoreMismatchError describes a proof whose recorded score differs from the recomputed one.
type ScoreMismatchError struct {
	Nonce    uint64
	Expected Score
	Found    Score
}

func (err *ScoreMismatchError) Error() string {
	return fmt.Sprintf("proof score mismatch for nonce %d; expected: %v, found: %v", err.Nonce, err.Expected, err.Found)
}

func (err *ScoreMismatchError) Unwrap() error {
	return ErrInvalidProof
}

// InsufficientDifficultyError describes a proof that does not clear the threshold in force.
type InsufficientDifficultyError struct {
	Score     Score
	Threshold Threshold
}

func (err *InsufficientDifficultyError) Error() string {
	return fmt.Sprintf("score %v is below threshold %v", err.Score, err.Threshold)
}

func (err *InsufficientDifficultyError) Unwrap() error {
	return ErrInsufficientDifficulty
}
