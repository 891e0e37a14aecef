package shared

import "fmt"

// Salt is the deployment wide secret prefixed to every scored message.
// It separates proofs of unrelated systems. The zero value is the empty salt.
// A Salt never changes after construction and is safe to share between goroutines.
type Salt struct {
	b string
}

// NewSalt copies b into a Salt.
func NewSalt(b []byte) Salt {
	return Salt{b: string(b)}
}

// SaltFromString returns a Salt made of the bytes of s.
func SaltFromString(s string) Salt {
	return Salt{b: s}
}

// Len returns the salt length in bytes.
func (s Salt) Len() int {
	return len(s.b)
}

// AppendTo appends the salt bytes to dst.
func (s Salt) AppendTo(dst []byte) []byte {
	return append(dst, s.b...)
}

// Bytes returns a copy of the salt bytes.
func (s Salt) Bytes() []byte {
	return []byte(s.b)
}

// Equal reports whether both salts hold the same bytes.
func (s Salt) Equal(other Salt) bool {
	return s.b == other.b
}

// String does not reveal the salt.
func (s Salt) String() string {
	return fmt.Sprintf("Salt(%d bytes)", len(s.b))
}
