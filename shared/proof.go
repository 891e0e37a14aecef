package shared

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"lukechampine.com/uint128"

	"github.com/saltedpow/pow/codec"
)

// ProofSize is the length of an encoded Proof.
const ProofSize = 8 + 16

// Proof is evidence that work was spent on a target of type T.
// T only ties the proof to its target type at compile time; it is not part of the encoding.
type Proof[T any] struct {
	Nonce uint64
	Score Score
}

// Cast reinterprets a proof as one over a different target type. The encoding is unchanged.
func Cast[U, T any](p Proof[T]) Proof[U] {
	return Proof[U]{Nonce: p.Nonce, Score: p.Score}
}

func (p Proof[T]) EncodeNe(enc *codec.Encoder, _ bool) error {
	if err := enc.EncodeUint64(p.Nonce); err != nil {
		return err
	}
	return enc.EncodeUint128(p.Score)
}

func (p *Proof[T]) DecodeNe(dec *codec.Decoder, _ bool) error {
	nonce, err := dec.DecodeUint64()
	if err != nil {
		return fmt.Errorf("proof nonce: %w", err)
	}
	score, err := dec.DecodeUint128()
	if err != nil {
		return fmt.Errorf("proof score: %w", err)
	}
	p.Nonce, p.Score = nonce, score
	return nil
}

// MarshalBinary returns the 24 byte wire form.
func (p Proof[T]) MarshalBinary() ([]byte, error) {
	return codec.Marshal(p)
}

// UnmarshalBinary parses exactly one wire form proof.
func (p *Proof[T]) UnmarshalBinary(data []byte) error {
	return codec.UnmarshalExact(data, p)
}

// String returns the hex encoded wire form.
func (p Proof[T]) String() string {
	b, err := p.MarshalBinary()
	if err != nil {
		return fmt.Sprintf("Proof(%d, %v)", p.Nonce, p.Score)
	}
	return hex.EncodeToString(b)
}

// ParseProof decodes the hex form produced by Proof.String.
func ParseProof[T any](s string) (Proof[T], error) {
	var p Proof[T]
	data, err := hex.DecodeString(s)
	if err != nil {
		return p, fmt.Errorf("invalid proof hex: %w", err)
	}
	if err := p.UnmarshalBinary(data); err != nil {
		return p, err
	}
	return p, nil
}

type proofJSON struct {
	Nonce uint64 `json:"nonce"`
	Score string `json:"score"`
}

func (p Proof[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(proofJSON{Nonce: p.Nonce, Score: p.Score.String()})
}

func (p *Proof[T]) UnmarshalJSON(data []byte) error {
	var v proofJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	score, err := uint128.FromString(v.Score)
	if err != nil {
		return fmt.Errorf("invalid proof score: %w", err)
	}
	p.Nonce, p.Score = v.Nonce, score
	return nil
}
