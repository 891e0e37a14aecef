package shared

import (
	"fmt"
	"math/big"
	"strings"

	"lukechampine.com/uint128"
)

// Score is the 128 bit number derived from a salted hash. Larger means more work.
type Score = uint128.Uint128

// Threshold is the minimum score a proof must reach to be accepted.
type Threshold uint128.Uint128

// Average is the expected number of attempts needed to reach a Threshold.
type Average uint128.Uint128

// MaxThreshold can only be met by a score of all ones.
var MaxThreshold = Threshold(uint128.Max)

// NewAverage returns an Average of n attempts.
func NewAverage(n uint64) Average {
	return Average(uint128.From64(n))
}

// ThresholdFromAverage converts an expected number of attempts into a threshold:
//
//	D = MAX - MAX / A
//
// The division truncates. Zero attempts is rejected with ErrInvalidDifficulty.
func ThresholdFromAverage(avg Average) (Threshold, error) {
	a := uint128.Uint128(avg)
	if a.IsZero() {
		return Threshold{}, ErrInvalidDifficulty
	}
	return Threshold(uint128.Max.Sub(uint128.Max.Div(a))), nil
}

// AverageFromThreshold is the inverse of ThresholdFromAverage:
//
//	A = MAX / (MAX - D)
//
// A threshold of MAX saturates to an average of MAX.
func AverageFromThreshold(d Threshold) Average {
	t := uint128.Uint128(d)
	if t.Equals(uint128.Max) {
		return Average(uint128.Max)
	}
	return Average(uint128.Max.Div(uint128.Max.Sub(t)))
}

// Passes reports whether score clears the threshold.
func (d Threshold) Passes(score Score) bool {
	return score.Cmp(uint128.Uint128(d)) >= 0
}

func (d Threshold) Uint128() uint128.Uint128 {
	return uint128.Uint128(d)
}

func (d Threshold) String() string {
	return uint128.Uint128(d).String()
}

// Hex returns the threshold as 32 hex digits.
func (d Threshold) Hex() string {
	return fmt.Sprintf("%016x%016x", d.Hi, d.Lo)
}

func (d Threshold) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Threshold) UnmarshalText(text []byte) error {
	v, err := parseUint128(string(text))
	if err != nil {
		return fmt.Errorf("invalid threshold: %w", err)
	}
	*d = Threshold(v)
	return nil
}

// ParseThreshold parses a decimal or 0x prefixed hexadecimal threshold.
func ParseThreshold(s string) (Threshold, error) {
	var d Threshold
	err := d.UnmarshalText([]byte(s))
	return d, err
}

func (a Average) Uint128() uint128.Uint128 {
	return uint128.Uint128(a)
}

func (a Average) String() string {
	return uint128.Uint128(a).String()
}

func (a Average) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Average) UnmarshalText(text []byte) error {
	v, err := parseUint128(string(text))
	if err != nil {
		return fmt.Errorf("invalid average: %w", err)
	}
	*a = Average(v)
	return nil
}

// ParseAverage parses a decimal or 0x prefixed hexadecimal number of attempts.
func ParseAverage(s string) (Average, error) {
	var a Average
	err := a.UnmarshalText([]byte(s))
	return a, err
}

func parseUint128(s string) (uint128.Uint128, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	i, ok := new(big.Int).SetString(s, base)
	if !ok {
		return uint128.Zero, fmt.Errorf("not a base %d number: %q", base, s)
	}
	if i.Sign() < 0 || i.BitLen() > 128 {
		return uint128.Zero, fmt.Errorf("%v is out of the 128 bit unsigned range", i)
	}
	return uint128.FromBig(i), nil
}
