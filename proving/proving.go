// Package proving searches for nonces whose salted score clears a threshold.
package proving

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/saltedpow/pow/codec"
	"github.com/saltedpow/pow/oracle"
	"github.com/saltedpow/pow/shared"
)

// Generate encodes target and searches for a proof that clears threshold.
func Generate[T any](ctx context.Context, salt shared.Salt, target T, threshold shared.Threshold, opts ...OptionFunc) (*shared.Proof[T], error) {
	encoded, err := codec.Marshal(target)
	if err != nil {
		return nil, err
	}
	return GenerateSerialized[T](ctx, salt, encoded, threshold, opts...)
}

// GenerateSerialized searches for a proof over an already encoded target.
//
// Nonces are tried from the start nonce upwards and never wrap around. With k workers,
// worker i tries start+i, start+i+k, ... and the first passing nonce found by any worker
// is returned. ErrSearchExhausted is returned if no nonce up to MaxUint64 passes.
func GenerateSerialized[T any](ctx context.Context, salt shared.Salt, encoded []byte, threshold shared.Threshold, opts ...OptionFunc) (*shared.Proof[T], error) {
	options := defaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	logger := options.logger

	wo, err := oracle.New(oracle.WithSalt(salt), oracle.WithTarget(encoded))
	if err != nil {
		return nil, err
	}

	logger.Debug("proving: starting search",
		zap.String("threshold", threshold.Hex()),
		zap.Stringer("average", shared.AverageFromThreshold(threshold)),
		zap.Uint("workers", options.workers),
		zap.Uint64("start", options.startNonce),
	)

	start := time.Now()
	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, egCtx := errgroup.WithContext(workerCtx)

	var (
		mu       sync.Mutex
		found    *solution
		attempts uint64
	)
	stride := uint64(options.workers)
	for i := uint64(0); i < stride; i++ {
		if options.startNonce > math.MaxUint64-i {
			break
		}
		id, first, worker := int(i), options.startNonce+i, wo.Clone()
		eg.Go(func() error {
			sol, n, err := nonceWorker(egCtx, id, worker, threshold, first, stride, options.progressInterval, logger)
			mu.Lock()
			defer mu.Unlock()
			attempts += n
			if sol != nil && found == nil {
				found = sol
				cancel()
			}
			return err
		})
	}

	err = eg.Wait()
	if found == nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return nil, err
		}
		logger.Info("proving: nonce space exhausted", zap.Uint64("attempts", attempts))
		return nil, shared.ErrSearchExhausted
	}

	logger.Info("proving: generated proof",
		zap.Uint64("nonce", found.Nonce),
		zap.Stringer("score", found.Score),
		zap.Uint64("attempts", attempts),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("target_size", bytefmt.ByteSize(uint64(len(encoded)))),
	)

	return &shared.Proof[T]{Nonce: found.Nonce, Score: found.Score}, nil
}
