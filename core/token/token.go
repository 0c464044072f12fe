package token

import (
	"crypto/rand"
	"encoding/base64"
)

// Size is the number of random bytes in a session identifier (256 bits).
const Size = 32

// encodedLen is the length of the base64url string form of an ID.
var encodedLen = base64.RawURLEncoding.EncodedLen(Size)

// ID is an opaque, fixed-length session identifier drawn from a
// cryptographically secure random source. The zero value is never produced
// by New and can be used as a sentinel for "no session".
type ID [Size]byte

// New generates a fresh identifier. A depleted entropy source is a fatal
// process condition, so New panics instead of returning an error.
func New() ID {
	var id ID
	if _, err := rand.Read(id[:]); err != nil {
		panic("token: entropy source unavailable: " + err.Error())
	}
	return id
}

// String returns the cookie string form of the identifier,
// base64url without padding.
func (id ID) String() string {
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// IsZero reports whether the identifier is the zero value.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Parse decodes the cookie string form produced by String. It rejects
// values of the wrong length or alphabet, so malformed cookie values never
// reach a store lookup.
func Parse(s string) (ID, error) {
	if len(s) != encodedLen {
		return ID{}, ErrInvalidToken
	}

	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return ID{}, ErrInvalidToken
	}

	var id ID
	copy(id[:], b)
	return id, nil
}
