package password

import "errors"

// ErrInvalidRecord is returned for a malformed or unsupported credential
// record. It is always surfaced, never treated as a non-match: corrupt
// stored data and a wrong password are different incidents.
var ErrInvalidRecord = errors.New("password: invalid credential record")
