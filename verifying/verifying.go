// Package verifying checks proofs produced by the proving package.
//
// A proof is valid for a target when its recorded score equals the score recomputed
// from the salt, the target encoding and the proof nonce. Validity says nothing about
// difficulty; use MeetsDifficulty or Verify for that.
package verifying

import (
	"go.uber.org/zap"

	"github.com/saltedpow/pow/codec"
	"github.com/saltedpow/pow/oracle"
	"github.com/saltedpow/pow/shared"
)

// Calculate recomputes the score of proof for target.
func Calculate[T any](proof shared.Proof[T], target T, salt shared.Salt) (shared.Score, error) {
	encoded, err := codec.Marshal(target)
	if err != nil {
		return shared.Score{}, err
	}
	return oracle.Score(salt, encoded, proof.Nonce), nil
}

// IsValid reports whether proof was computed for target under salt.
// A target that cannot be encoded has no valid proofs.
func IsValid[T any](proof shared.Proof[T], target T, salt shared.Salt) bool {
	score, err := Calculate(proof, target, salt)
	if err != nil {
		return false
	}
	return score.Equals(proof.Score)
}

// IsValidSerialized is like IsValid for an already encoded target.
func IsValidSerialized[T any](proof shared.Proof[T], encoded []byte, salt shared.Salt) bool {
	return oracle.Score(salt, encoded, proof.Nonce).Equals(proof.Score)
}

// MeetsDifficulty reports whether the recorded score clears threshold.
// It does not recompute the score; pair it with IsValid.
func MeetsDifficulty[T any](proof shared.Proof[T], threshold shared.Threshold) bool {
	return threshold.Passes(proof.Score)
}

// IsValidWire decodes a wire form proof and checks it against target.
// Malformed input is reported as invalid.
func IsValidWire[T any](wire []byte, target T, salt shared.Salt) bool {
	var proof shared.Proof[T]
	if err := proof.UnmarshalBinary(wire); err != nil {
		return false
	}
	return IsValid(proof, target, salt)
}

// Verify checks both validity and difficulty.
// It returns a *shared.ScoreMismatchError or a *shared.InsufficientDifficultyError describing the failure.
func Verify[T any](proof shared.Proof[T], target T, salt shared.Salt, threshold shared.Threshold, opts ...OptionFunc) error {
	options := applyOpts(opts...)
	logger := options.logger

	score, err := Calculate(proof, target, salt)
	if err != nil {
		return err
	}

	if !score.Equals(proof.Score) {
		logger.Debug("verifying: score mismatch",
			zap.Uint64("nonce", proof.Nonce),
			zap.Stringer("expected", score),
			zap.Stringer("found", proof.Score),
		)
		return &shared.ScoreMismatchError{Nonce: proof.Nonce, Expected: score, Found: proof.Score}
	}

	if !threshold.Passes(score) {
		logger.Debug("verifying: insufficient difficulty",
			zap.Stringer("score", score),
			zap.String("threshold", threshold.Hex()),
		)
		return &shared.InsufficientDifficultyError{Score: score, Threshold: threshold}
	}

	return nil
}
