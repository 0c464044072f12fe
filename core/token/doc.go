// Package token generates and parses opaque session identifiers.
//
// Identifiers carry 256 bits of entropy from crypto/rand and are encoded as
// padding-free base64url for use as cookie values. They are never derived
// from user input or sequential counters, so a valid identifier cannot be
// guessed or enumerated faster than brute force over the full token space.
//
// Usage:
//
//	id := token.New()
//	cookieValue := id.String()
//
//	parsed, err := token.Parse(cookieValue)
//	if err != nil {
//		// malformed or truncated value, treat the request as anonymous
//	}
package token
