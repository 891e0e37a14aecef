package codec

import "encoding/hex"

// Bytes is a byte sequence usable as a type parameter where an Encodable is expected.
type Bytes []byte

func (b Bytes) EncodeNe(enc *Encoder, last bool) error {
	return enc.EncodeBytes(b, last)
}

func (b *Bytes) DecodeNe(dec *Decoder, last bool) error {
	v, err := dec.DecodeBytes(last)
	*b = v
	return err
}

func (b Bytes) String() string {
	return hex.EncodeToString(b)
}

// Pair is a two field record.
type Pair[A, B any] struct {
	First  A
	Second B
}

func (p Pair[A, B]) EncodeNe(enc *Encoder, last bool) error {
	if err := enc.Encode(p.First, false); err != nil {
		return err
	}
	return enc.Encode(p.Second, last)
}

func (p *Pair[A, B]) DecodeNe(dec *Decoder, last bool) error {
	if err := dec.Decode(&p.First, false); err != nil {
		return err
	}
	return dec.Decode(&p.Second, last)
}

// Triple is a three field record.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

func (t Triple[A, B, C]) EncodeNe(enc *Encoder, last bool) error {
	if err := enc.Encode(t.First, false); err != nil {
		return err
	}
	if err := enc.Encode(t.Second, false); err != nil {
		return err
	}
	return enc.Encode(t.Third, last)
}

func (t *Triple[A, B, C]) DecodeNe(dec *Decoder, last bool) error {
	if err := dec.Decode(&t.First, false); err != nil {
		return err
	}
	if err := dec.Decode(&t.Second, false); err != nil {
		return err
	}
	return dec.Decode(&t.Third, last)
}

// Tuple4 is a four field record.
type Tuple4[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

func (t Tuple4[A, B, C, D]) EncodeNe(enc *Encoder, last bool) error {
	for _, v := range []any{t.First, t.Second, t.Third} {
		if err := enc.Encode(v, false); err != nil {
			return err
		}
	}
	return enc.Encode(t.Fourth, last)
}

func (t *Tuple4[A, B, C, D]) DecodeNe(dec *Decoder, last bool) error {
	for _, v := range []any{&t.First, &t.Second, &t.Third} {
		if err := dec.Decode(v, false); err != nil {
			return err
		}
	}
	return dec.Decode(&t.Fourth, last)
}
