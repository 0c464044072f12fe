package token

import "errors"

// ErrInvalidToken is returned when a string form does not decode to a
// well-formed identifier.
var ErrInvalidToken = errors.New("token: invalid token format")
