// Package codec implements the canonical network byte order encoding used for
// proof targets and proofs.
//
// Fixed width integers are written big-endian at their natural width. Byte
// sequences are written verbatim when they are the trailing field of a record
// and as an XDR variable opaque (4 byte length, zero padded to a multiple of 4)
// otherwise. Records are the concatenation of their fields in declared order.
package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrUnencodable is returned when a value has no registered encoding.
	ErrUnencodable = errors.New("codec: type has no encoding")

	// ErrTruncatedInput is returned when fewer bytes remain than a field requires.
	ErrTruncatedInput = errors.New("codec: truncated input")

	// ErrMalformed is returned for inputs that are long enough but not canonical.
	ErrMalformed = errors.New("codec: malformed input")
)

// Encodable is implemented by records that know how to write themselves.
// last is set when the value is the trailing field of the enclosing record.
type Encodable interface {
	EncodeNe(enc *Encoder, last bool) error
}

// Decodable is the inverse of Encodable.
type Decodable interface {
	DecodeNe(dec *Decoder, last bool) error
}

// Marshal returns the canonical encoding of v.
func Marshal(v any) ([]byte, error) {
	enc := NewEncoder()
	if err := enc.Encode(v, true); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// MustMarshal is like Marshal but panics if v cannot be encoded.
// It is intended for types known to be supported, such as package level test vectors.
func MustMarshal(v any) []byte {
	b, err := Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("codec: %v", err))
	}
	return b
}

// Unmarshal parses data into v, which must be a pointer to a supported type,
// and returns the bytes left unconsumed.
func Unmarshal(data []byte, v any) (rest []byte, err error) {
	dec := NewDecoder(data)
	if err := dec.Decode(v, true); err != nil {
		return nil, err
	}
	return dec.Rest(), nil
}

// UnmarshalExact is like Unmarshal but fails if any input is left over.
func UnmarshalExact(data []byte, v any) error {
	rest, err := Unmarshal(data, v)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(rest))
	}
	return nil
}
