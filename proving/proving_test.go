package proving

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"lukechampine.com/uint128"

	"github.com/saltedpow/pow/codec"
	"github.com/saltedpow/pow/oracle"
	"github.com/saltedpow/pow/shared"
)

var testSalt = shared.SaltFromString("myrandomsaltisnotlongenoug")

func threshold(t testing.TB, average uint64) shared.Threshold {
	t.Helper()
	d, err := shared.ThresholdFromAverage(shared.NewAverage(average))
	require.NoError(t, err)
	return d
}

func TestGenerate_SmallestNonce(t *testing.T) {
	tests := []struct {
		name    string
		average uint64
		nonce   uint64
		score   uint128.Uint128
	}{
		{"average 1000", 1000, 30, uint128.New(0xd8c8884bf898d3c9, 0xffcacc4a615fbf2c)},
		{"average 32", 32, 12, uint128.New(0xb0b1a458f99c547d, 0xfd270580ec678885)},
		{"average 1", 1, 1, uint128.New(0x447d9ee210b2153b, 0x0d2153120843be9b)},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)
			proof, err := Generate(context.Background(), testSalt, "ironmansucks", threshold(t, tc.average),
				WithLogger(zaptest.NewLogger(t)),
			)
			r.NoError(err)
			r.Equal(tc.nonce, proof.Nonce)
			r.Equal(tc.score, proof.Score)
		})
	}
}

func TestGenerate_StartNonce(t *testing.T) {
	proof, err := Generate(context.Background(), testSalt, "ironmansucks", threshold(t, 1000),
		WithStartNonce(31),
		WithProgressInterval(100),
		WithLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)
	require.Equal(t, uint64(1176), proof.Nonce)
}

func TestGenerate_Parallel(t *testing.T) {
	r := require.New(t)
	target := codec.Pair[string, uint64]{First: "ironmansucks", Second: 42}
	d := threshold(t, 5000)

	proof, err := Generate(context.Background(), testSalt, target, d,
		WithWorkers(4),
		WithLogger(zaptest.NewLogger(t)),
	)
	r.NoError(err)
	r.GreaterOrEqual(proof.Nonce, uint64(1))
	r.True(d.Passes(proof.Score))
	r.Equal(oracle.Score(testSalt, codec.MustMarshal(target), proof.Nonce), proof.Score)
}

func TestGenerate_AnyWorkerCount(t *testing.T) {
	d := threshold(t, 32)
	for workers := uint(1); workers <= 8; workers++ {
		proof, err := Generate(context.Background(), testSalt, "ironmansucks", d, WithWorkers(workers))
		require.NoError(t, err)
		require.True(t, d.Passes(oracle.Score(testSalt, codec.MustMarshal("ironmansucks"), proof.Nonce)))
	}
}

func TestGenerateSerialized_MatchesGenerate(t *testing.T) {
	r := require.New(t)
	d := threshold(t, 1000)

	proof, err := GenerateSerialized[string](context.Background(), testSalt, []byte("ironmansucks"), d)
	r.NoError(err)
	r.Equal(uint64(30), proof.Nonce)
}

func TestGenerate_Unencodable(t *testing.T) {
	_, err := Generate(context.Background(), testSalt, 3.14, threshold(t, 2))
	require.ErrorIs(t, err, codec.ErrUnencodable)
}

func TestGenerate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, testSalt, "ironmansucks", shared.MaxThreshold,
		WithWorkers(2),
		WithLogger(zaptest.NewLogger(t)),
	)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_Exhausted(t *testing.T) {
	for _, workers := range []uint{1, 3} {
		_, err := Generate(context.Background(), testSalt, "ironmansucks", shared.MaxThreshold,
			WithStartNonce(math.MaxUint64-1),
			WithWorkers(workers),
			WithLogger(zaptest.NewLogger(t)),
		)
		require.ErrorIs(t, err, shared.ErrSearchExhausted, "workers: %d", workers)
	}
}

func TestOptions_Validation(t *testing.T) {
	_, err := Generate(context.Background(), testSalt, "x", threshold(t, 1), WithWorkers(0))
	require.Error(t, err)

	_, err = Generate(context.Background(), testSalt, "x", threshold(t, 1), WithLogger(nil))
	require.ErrorContains(t, err, "logger")
}

func BenchmarkGenerate(b *testing.B) {
	d := threshold(b, 1000)
	for i := 0; i < b.N; i++ {
		_, err := Generate(context.Background(), testSalt, codec.Pair[string, uint64]{First: "bench", Second: uint64(i)}, d)
		require.NoError(b, err)
	}
}
