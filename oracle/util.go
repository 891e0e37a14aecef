package oracle

import (
	"encoding/binary"

	"github.com/spacemeshos/sha256-simd"
	"lukechampine.com/uint128"

	"github.com/saltedpow/pow/shared"
)

// scoreFromDigest reads the first 16 bytes of a digest as a big-endian 128 bit number.
func scoreFromDigest(digest [sha256.Size]byte) shared.Score {
	return uint128.FromBytesBE(digest[:16])
}

// message appends salt || target || nonce to dst.
func message(dst []byte, salt shared.Salt, target []byte, nonce uint64) []byte {
	dst = salt.AppendTo(dst)
	dst = append(dst, target...)
	return putNonce(dst, nonce)
}

func putNonce(dst []byte, nonce uint64) []byte {
	return binary.BigEndian.AppendUint64(dst, nonce)
}
