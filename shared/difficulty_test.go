package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func mustU128(t *testing.T, s string) uint128.Uint128 {
	t.Helper()
	v, err := parseUint128(s)
	require.NoError(t, err)
	return v
}

func TestThresholdFromAverage_Table(t *testing.T) {
	tests := []struct {
		average   string
		threshold string
		inverse   string
	}{
		{"1", "0x0", "1"},
		{"2", "0x80000000000000000000000000000000", "2"},
		{"3", "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "3"},
		{"32", "0xf8000000000000000000000000000000", "32"},
		{"1000", "0xffbe76c8b4395810624dd2f1a9fbe76c", "1000"},
		{"100000", "0xffff583a53b8e4b87bdcf0307f23cc8d", "100000"},
		{"18446744073709551616", "0xffffffffffffffff0000000000000000", "18446744073709551617"},
		{"340282366920938463463374607431768211455", "0xfffffffffffffffffffffffffffffffe", "340282366920938463463374607431768211455"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.average, func(t *testing.T) {
			r := require.New(t)
			avg, err := ParseAverage(tc.average)
			r.NoError(err)

			d, err := ThresholdFromAverage(avg)
			r.NoError(err)
			r.Equal(mustU128(t, tc.threshold), d.Uint128())

			r.Equal(mustU128(t, tc.inverse), AverageFromThreshold(d).Uint128())
		})
	}
}

func TestThresholdFromAverage_ThirtyTwo(t *testing.T) {
	d, err := ThresholdFromAverage(NewAverage(32))
	require.NoError(t, err)
	require.Equal(t, uint128.Max.Sub(uint128.Max.Div64(32)), d.Uint128())
}

func TestThresholdFromAverage_Zero(t *testing.T) {
	_, err := ThresholdFromAverage(NewAverage(0))
	require.ErrorIs(t, err, ErrInvalidDifficulty)

	_, err = ThresholdFromAverage(Average{})
	require.ErrorIs(t, err, ErrInvalidDifficulty)
}

func TestAverageFromThreshold_Boundaries(t *testing.T) {
	r := require.New(t)
	r.Equal(uint128.Max, AverageFromThreshold(MaxThreshold).Uint128())
	r.Equal(uint128.Max, AverageFromThreshold(Threshold(uint128.Max.Sub64(1))).Uint128())
	r.Equal(uint128.From64(1), AverageFromThreshold(Threshold{}).Uint128())
}

func TestAverageRoundTrip_Monotonic(t *testing.T) {
	prev := Threshold{}
	for _, n := range []uint64{1, 2, 5, 17, 1000, 1 << 20, 1 << 40, 1<<64 - 1} {
		d, err := ThresholdFromAverage(NewAverage(n))
		require.NoError(t, err)
		require.GreaterOrEqual(t, d.Uint128().Cmp(prev.Uint128()), 0, "thresholds must grow with the average")
		prev = d

		back := AverageFromThreshold(d).Uint128()
		require.GreaterOrEqual(t, back.Cmp64(n), 0)
	}
}

func TestThreshold_Passes(t *testing.T) {
	d := Threshold(uint128.From64(100))
	require.True(t, d.Passes(uint128.From64(100)))
	require.True(t, d.Passes(uint128.From64(101)))
	require.False(t, d.Passes(uint128.From64(99)))

	require.True(t, Threshold{}.Passes(uint128.Zero))
	require.True(t, MaxThreshold.Passes(uint128.Max))
	require.False(t, MaxThreshold.Passes(uint128.Max.Sub64(1)))
}

func TestParseThreshold(t *testing.T) {
	r := require.New(t)

	d, err := ParseThreshold("0xf8000000000000000000000000000000")
	r.NoError(err)
	r.Equal("f8000000000000000000000000000000", d.Hex())

	d2, err := ParseThreshold(d.String())
	r.NoError(err)
	r.Equal(d, d2)

	_, err = ParseThreshold("-1")
	r.Error(err)
	_, err = ParseThreshold("340282366920938463463374607431768211456")
	r.Error(err)
	_, err = ParseThreshold("0xzz")
	r.Error(err)
}

func TestThreshold_Text(t *testing.T) {
	d, err := ThresholdFromAverage(NewAverage(1000))
	require.NoError(t, err)

	text, err := d.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "339942084554017524999911232824336443244", string(text))

	var d2 Threshold
	require.NoError(t, d2.UnmarshalText(text))
	require.Equal(t, d, d2)
}
