package codec

import (
	"bytes"
	"fmt"
	"io"

	xdr "github.com/nullstyle/go-xdr/xdr3"
	"lukechampine.com/uint128"
)

// Decoder consumes canonical encodings from a byte slice.
type Decoder struct {
	r   *bytes.Reader
	xdr *xdr.Decoder
}

// NewDecoder returns a Decoder reading from data.
func NewDecoder(data []byte) *Decoder {
	r := bytes.NewReader(data)
	return &Decoder{
		r:   r,
		xdr: xdr.NewDecoder(r),
	}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return d.r.Len()
}

// Rest returns a copy of the unread bytes without consuming them.
func (d *Decoder) Rest() []byte {
	rest := make([]byte, d.r.Len())
	n, _ := d.r.ReadAt(rest, d.r.Size()-int64(d.r.Len()))
	return rest[:n]
}

// Decode reads into v, which must be a pointer to a supported type.
func (d *Decoder) Decode(v any, last bool) error {
	switch v := v.(type) {
	case Decodable:
		return v.DecodeNe(d, last)
	case *uint32:
		n, err := d.DecodeUint32()
		*v = n
		return err
	case *uint64:
		n, err := d.DecodeUint64()
		*v = n
		return err
	case *uint128.Uint128:
		n, err := d.DecodeUint128()
		*v = n
		return err
	case *[]byte:
		b, err := d.DecodeBytes(last)
		*v = b
		return err
	case *string:
		b, err := d.DecodeBytes(last)
		*v = string(b)
		return err
	default:
		return fmt.Errorf("%w: %T", ErrUnencodable, v)
	}
}

func (d *Decoder) need(field string, n int) error {
	if d.r.Len() < n {
		return fmt.Errorf("%w: %s needs %d bytes, %d left", ErrTruncatedInput, field, n, d.r.Len())
	}
	return nil
}

// DecodeUint32 reads 4 bytes big-endian.
func (d *Decoder) DecodeUint32() (uint32, error) {
	if err := d.need("uint32", 4); err != nil {
		return 0, err
	}
	v, _, err := d.xdr.DecodeUint()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return v, nil
}

// DecodeUint64 reads 8 bytes big-endian.
func (d *Decoder) DecodeUint64() (uint64, error) {
	if err := d.need("uint64", 8); err != nil {
		return 0, err
	}
	v, _, err := d.xdr.DecodeUhyper()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return v, nil
}

// DecodeUint128 reads 16 bytes big-endian.
func (d *Decoder) DecodeUint128() (uint128.Uint128, error) {
	if err := d.need("uint128", 16); err != nil {
		return uint128.Zero, err
	}
	b, _, err := d.xdr.DecodeFixedOpaque(16)
	if err != nil {
		return uint128.Zero, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return uint128.FromBytesBE(b), nil
}

// DecodeBytes reads a byte sequence. When last is set it consumes the remainder of the input.
func (d *Decoder) DecodeBytes(last bool) ([]byte, error) {
	if last {
		b, err := io.ReadAll(d.r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return b, nil
	}

	n, err := d.DecodeUint32()
	if err != nil {
		return nil, err
	}
	size := int(n)
	if uint64(size) != uint64(n) || size+padding(size) < size {
		return nil, fmt.Errorf("%w: length %d overflows", ErrMalformed, n)
	}
	if err := d.need("bytes", size+padding(size)); err != nil {
		return nil, err
	}

	b := make([]byte, size)
	if _, err := io.ReadFull(d.r, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var pad [3]byte
	p := pad[:padding(size)]
	if _, err := io.ReadFull(d.r, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for _, c := range p {
		if c != 0 {
			return nil, fmt.Errorf("%w: non-zero padding", ErrMalformed)
		}
	}
	return b, nil
}
