package proving

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/saltedpow/pow/oracle"
	"github.com/saltedpow/pow/shared"
)

type solution struct {
	Nonce uint64
	Score shared.Score
}

// nonceWorker tries start, start+stride, start+2*stride, ... until a score clears threshold.
// It returns a nil solution when the nonce space above start is exhausted.
// attempts is the number of nonces scored by this worker.
func nonceWorker(ctx context.Context, id int, wo *oracle.WorkOracle, threshold shared.Threshold, start, stride, progress uint64, logger *zap.Logger) (sol *solution, attempts uint64, err error) {
	done := ctx.Done()
	for nonce := start; ; nonce += stride {
		select {
		case <-done:
			return nil, attempts, ctx.Err()
		default:
		}

		score := wo.Score(nonce)
		attempts++
		if threshold.Passes(score) {
			return &solution{Nonce: nonce, Score: score}, attempts, nil
		}

		if progress > 0 && attempts%progress == 0 {
			logger.Debug("proving: searching",
				zap.Int("worker", id),
				zap.Uint64("nonce", nonce),
				zap.Uint64("attempts", attempts),
			)
		}

		if nonce > math.MaxUint64-stride {
			return nil, attempts, nil
		}
	}
}
