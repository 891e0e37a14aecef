// Package oracle computes salted work scores.
//
// The score of a nonce is the first 16 bytes, read big-endian, of
//
//	SHA256(salt || target || nonce)
//
// where target is the canonical encoding of the value being tagged and nonce is
// written as 8 big-endian bytes.
package oracle

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/sha256-simd"

	"github.com/saltedpow/pow/codec"
	"github.com/saltedpow/pow/shared"
)

// Score returns the score of nonce for an already encoded target.
func Score(salt shared.Salt, target []byte, nonce uint64) shared.Score {
	buf := make([]byte, 0, salt.Len()+len(target)+8)
	return scoreFromDigest(sha256.Sum256(message(buf, salt, target, nonce)))
}

type option struct {
	salt   *shared.Salt
	target []byte
}

func (o *option) validate() error {
	if o.salt == nil {
		return errors.New("`salt` is required")
	}

	if o.target == nil {
		return errors.New("`target` is required")
	}

	return nil
}

// OptionFunc is a function that sets an option for a WorkOracle instance.
type OptionFunc func(*option) error

// WithSalt sets the salt prefixed to every scored message.
func WithSalt(salt shared.Salt) OptionFunc {
	return func(opts *option) error {
		opts.salt = &salt
		return nil
	}
}

// WithTarget sets the canonical encoding of the target. The slice is copied.
func WithTarget(target []byte) OptionFunc {
	return func(opts *option) error {
		opts.target = append(make([]byte, 0, len(target)), target...)
		return nil
	}
}

// WithTargetValue encodes v with the canonical codec and uses the result as target.
func WithTargetValue(v any) OptionFunc {
	return func(opts *option) error {
		target, err := codec.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode target: %w", err)
		}
		opts.target = target
		return nil
	}
}

// WorkOracle scores nonces for a fixed salt and target.
// It keeps the salted message in a private buffer and only rewrites the trailing nonce,
// so it must not be used from more than one goroutine. Use Clone to get one per worker.
type WorkOracle struct {
	buf    []byte
	prefix int
}

// New returns a WorkOracle for the given salt and target.
func New(opts ...OptionFunc) (*WorkOracle, error) {
	options := &option{}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	if err := options.validate(); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, options.salt.Len()+len(options.target)+8)
	buf = message(buf, *options.salt, options.target, 0)
	return &WorkOracle{
		buf:    buf,
		prefix: len(buf) - 8,
	}, nil
}

// Score returns the score of nonce.
func (w *WorkOracle) Score(nonce uint64) shared.Score {
	w.buf = putNonce(w.buf[:w.prefix], nonce)
	return scoreFromDigest(sha256.Sum256(w.buf))
}

// Clone returns an independent WorkOracle for the same salt and target.
func (w *WorkOracle) Clone() *WorkOracle {
	return &WorkOracle{
		buf:    append(make([]byte, 0, len(w.buf)), w.buf...),
		prefix: w.prefix,
	}
}

// MessageLen returns the length of the hashed message in bytes.
func (w *WorkOracle) MessageLen() int {
	return len(w.buf)
}
