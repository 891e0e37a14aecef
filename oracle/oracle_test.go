package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/saltedpow/pow/codec"
	"github.com/saltedpow/pow/shared"
)

var testSalt = shared.SaltFromString("myrandomsaltisnotlongenoug")

func TestScore_Vectors(t *testing.T) {
	target := codec.MustMarshal("ironmansucks")
	tests := []struct {
		nonce uint64
		score uint128.Uint128
	}{
		{0, uint128.New(0xe5eecc7961147e17, 0xb30d636ffb7456c4)},
		{1, uint128.New(0x447d9ee210b2153b, 0x0d2153120843be9b)},
		{2, uint128.New(0x0d757a9e614b63ea, 0xda4b0d9d325f53ee)},
	}
	for _, tc := range tests {
		require.Equal(t, tc.score, Score(testSalt, target, tc.nonce), "nonce %d", tc.nonce)
	}

	require.Equal(t, "17452994610197362227191555290679088443", Score(testSalt, target, 1).String())
}

func TestScore_EmptyInputs(t *testing.T) {
	require.Equal(t, uint128.New(0xf78caf4bc70a660f, 0xaf5570f5a1810b7a), Score(shared.Salt{}, nil, 0))
}

func TestScore_TupleTarget(t *testing.T) {
	target := codec.MustMarshal(codec.Pair[string, uint64]{First: "ab", Second: 7})
	require.Equal(t, uint128.New(0x2136548cafedbe75, 0xfce2aff3d81e703b), Score(testSalt, target, 5))
}

func TestScore_SaltMatters(t *testing.T) {
	target := codec.MustMarshal("ironmansucks")
	require.NotEqual(t, Score(testSalt, target, 1), Score(shared.SaltFromString("other"), target, 1))
}

func TestWorkOracle_MatchesScore(t *testing.T) {
	r := require.New(t)
	target := codec.MustMarshal("ironmansucks")

	w, err := New(WithSalt(testSalt), WithTarget(target))
	r.NoError(err)
	r.Equal(testSalt.Len()+len(target)+8, w.MessageLen())

	for _, nonce := range []uint64{2, 0, 1, 1 << 40, ^uint64(0)} {
		r.Equal(Score(testSalt, target, nonce), w.Score(nonce))
	}
}

func TestWorkOracle_TargetValue(t *testing.T) {
	r := require.New(t)
	w, err := New(WithSalt(testSalt), WithTargetValue("ironmansucks"))
	r.NoError(err)
	r.Equal(uint128.New(0x447d9ee210b2153b, 0x0d2153120843be9b), w.Score(1))

	_, err = New(WithSalt(testSalt), WithTargetValue(1.5))
	r.ErrorIs(err, codec.ErrUnencodable)
}

func TestWorkOracle_TargetIsCopied(t *testing.T) {
	target := []byte("ironmansucks")
	w, err := New(WithSalt(testSalt), WithTarget(target))
	require.NoError(t, err)

	target[0] = 'X'
	require.Equal(t, uint128.New(0x447d9ee210b2153b, 0x0d2153120843be9b), w.Score(1))
}

func TestWorkOracle_Clone(t *testing.T) {
	w, err := New(WithSalt(testSalt), WithTarget([]byte("ironmansucks")))
	require.NoError(t, err)

	c := w.Clone()
	want := w.Score(7)
	c.Score(8)
	require.Equal(t, want, w.Score(7))
	require.Equal(t, want, c.Score(7))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(WithTarget([]byte("x")))
	require.ErrorContains(t, err, "salt")

	_, err = New(WithSalt(testSalt))
	require.ErrorContains(t, err, "target")

	_, err = New(WithSalt(shared.Salt{}), WithTarget([]byte{}))
	require.NoError(t, err)
}

func BenchmarkWorkOracle(b *testing.B) {
	w, err := New(WithSalt(testSalt), WithTarget([]byte("ironmansucks")))
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Score(uint64(i))
	}
}

func FuzzScore(f *testing.F) {
	f.Add([]byte("salt"), []byte("target"), uint64(1))
	f.Add([]byte{}, []byte{}, uint64(0))
	f.Fuzz(func(t *testing.T, salt, target []byte, nonce uint64) {
		s := shared.NewSalt(salt)
		w, err := New(WithSalt(s), WithTarget(target))
		require.NoError(t, err)
		require.Equal(t, Score(s, target, nonce), w.Score(nonce))
	})
}
