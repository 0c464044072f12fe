package session

import (
	"time"

	"github.com/authkit-dev/authkit/core/token"
)

// Status describes the lifecycle state of a session.
type Status uint8

const (
	// StatusActive marks a live session that may be returned to callers.
	StatusActive Status = iota
	// StatusExpired marks a session whose ExpiresAt has passed. Stores never
	// return expired sessions; the status exists for persistence and
	// diagnostics only.
	StatusExpired
	// StatusRevoked marks a session invalidated before its natural expiry.
	// Revoked sessions behave like absent ones on load.
	StatusRevoked
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusExpired:
		return "expired"
	case StatusRevoked:
		return "revoked"
	default:
		return "unknown"
	}
}

// Session is the unit of server-held state bound to a client via an opaque
// token. The Data type parameter allows custom session payloads specific to
// your application; the payload is opaque to every store backend.
//
// A Session is a value type: stores hand out copies, the middleware holds
// one mutable copy for the duration of a single request and hands it back to
// the store when the request ends. Mutation helpers track modification so
// the middleware only writes when something actually changed.
type Session[Data any] struct {
	// ID is the unguessable identifier carried in the cookie.
	ID token.ID

	// Data holds application-specific session state.
	// Examples: authenticated user id, shopping cart, UI preferences.
	Data Data

	CreatedAt      time.Time
	LastAccessedAt time.Time
	ExpiresAt      time.Time

	Status Status

	// isModified tracks whether the session needs saving.
	isModified bool
	// isDeleted marks the session for removal at the end of the request.
	isDeleted bool
	// isRotated requests a fresh identifier at the end of the request.
	isRotated bool
}

// SetData replaces the session payload and marks the session as modified.
func (s *Session[Data]) SetData(data Data) {
	s.Data = data
	s.isModified = true
}

// Revoke invalidates the session before its natural expiry. The store keeps
// the record but subsequent loads treat it as absent.
func (s *Session[Data]) Revoke() {
	s.Status = StatusRevoked
	s.isModified = true
}

// Delete marks the session for removal. The middleware removes the record
// and clears the cookie after the current request completes.
func (s *Session[Data]) Delete() {
	s.isDeleted = true
}

// Rotate requests a fresh identifier while keeping the payload. Use after a
// privilege change (login) to prevent session fixation. The middleware
// issues a new record under a new identifier, removes the old one, and sets
// the new cookie.
func (s *Session[Data]) Rotate() {
	s.isRotated = true
	s.isModified = true
}

// IsModified reports whether the session has pending changes to persist.
func (s Session[Data]) IsModified() bool {
	return s.isModified
}

// IsDeleted reports whether the session is marked for removal.
func (s Session[Data]) IsDeleted() bool {
	return s.isDeleted
}

// IsRotated reports whether an identifier rotation was requested.
func (s Session[Data]) IsRotated() bool {
	return s.isRotated
}

// IsExpired reports whether the session's expiry has passed.
func (s Session[Data]) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsActive reports whether the session is usable: active status and not yet
// expired.
func (s Session[Data]) IsActive() bool {
	return s.Status == StatusActive && !s.IsExpired()
}
