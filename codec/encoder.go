package codec

import (
	"bytes"
	"fmt"

	xdr "github.com/nullstyle/go-xdr/xdr3"
	"lukechampine.com/uint128"
)

// Encoder appends canonical encodings to an in-memory buffer.
type Encoder struct {
	buf bytes.Buffer
	xdr *xdr.Encoder
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	enc := &Encoder{}
	enc.xdr = xdr.NewEncoder(&enc.buf)
	return enc
}

// Bytes returns the encoded bytes. The slice aliases the encoder's buffer until the next write.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// Encode writes any supported value.
func (e *Encoder) Encode(v any, last bool) error {
	switch v := v.(type) {
	case Encodable:
		return v.EncodeNe(e, last)
	case uint32:
		return e.EncodeUint32(v)
	case uint64:
		return e.EncodeUint64(v)
	case uint128.Uint128:
		return e.EncodeUint128(v)
	case []byte:
		return e.EncodeBytes(v, last)
	case string:
		return e.EncodeBytes([]byte(v), last)
	default:
		return fmt.Errorf("%w: %T", ErrUnencodable, v)
	}
}

// EncodeUint32 writes v as 4 bytes big-endian.
func (e *Encoder) EncodeUint32(v uint32) error {
	_, err := e.xdr.EncodeUint(v)
	return err
}

// EncodeUint64 writes v as 8 bytes big-endian.
func (e *Encoder) EncodeUint64(v uint64) error {
	_, err := e.xdr.EncodeUhyper(v)
	return err
}

// EncodeUint128 writes v as 16 bytes big-endian.
func (e *Encoder) EncodeUint128(v uint128.Uint128) error {
	var b [16]byte
	v.PutBytesBE(b[:])
	_, err := e.xdr.EncodeFixedOpaque(b[:])
	return err
}

// EncodeBytes writes b verbatim when last is set, and length prefixed otherwise.
func (e *Encoder) EncodeBytes(b []byte, last bool) error {
	if last {
		_, err := e.buf.Write(b)
		return err
	}
	if uint64(len(b)) > maxOpaqueLen {
		return fmt.Errorf("%w: %d bytes exceed the length prefix", ErrUnencodable, len(b))
	}
	if _, err := e.xdr.EncodeUint(uint32(len(b))); err != nil {
		return err
	}
	_, err := e.xdr.EncodeFixedOpaque(b)
	return err
}

const maxOpaqueLen = 1<<32 - 1

func padding(n int) int {
	return (4 - n%4) % 4
}
