package proving

import (
	"errors"

	"go.uber.org/zap"
)

type option struct {
	logger *zap.Logger
	// How many goroutines search for a nonce.
	workers uint
	// First nonce to try.
	startNonce uint64
	// Attempts between progress logs of a single worker. 0 disables them.
	progressInterval uint64
}

func defaultOptions() *option {
	return &option{
		logger:     zap.NewNop(),
		workers:    1,
		startNonce: 1,
	}
}

func (o *option) validate() error {
	if o.workers == 0 {
		return errors.New("`workers` must be greater than 0")
	}
	if o.logger == nil {
		return errors.New("`logger` is required")
	}
	return nil
}

type OptionFunc func(*option) error

// WithLogger sets the logger used while searching.
func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		o.logger = logger
		return nil
	}
}

// WithWorkers sets the number of goroutines searching in parallel.
// With a single worker the smallest passing nonce is returned.
func WithWorkers(workers uint) OptionFunc {
	return func(o *option) error {
		if workers == 0 {
			return errors.New("`workers` must be greater than 0")
		}
		o.workers = workers
		return nil
	}
}

// WithStartNonce sets the first nonce tried. The default is 1.
func WithStartNonce(nonce uint64) OptionFunc {
	return func(o *option) error {
		o.startNonce = nonce
		return nil
	}
}

// WithProgressInterval makes every worker log its progress at debug level each n attempts.
func WithProgressInterval(n uint64) OptionFunc {
	return func(o *option) error {
		o.progressInterval = n
		return nil
	}
}
