package session

import "errors"

var (
	// ErrNotFound is returned when a session is absent, expired, or revoked
	// at load time, or no longer exists at save time. The middleware treats
	// it as "session ended", never as a crash.
	ErrNotFound = errors.New("session: not found")

	// ErrBackendUnavailable is returned when the storage medium cannot be
	// reached or times out. It is never swallowed silently; the middleware's
	// configured policy decides whether it fails the request or downgrades
	// it to anonymous.
	ErrBackendUnavailable = errors.New("session: backend unavailable")

	// ErrTokenCollision is returned when a freshly generated identifier
	// already exists after internal retries. Astronomically rare under a
	// healthy entropy source.
	ErrTokenCollision = errors.New("session: token collision")

	// ErrPayloadTooLarge is returned when a serialized payload exceeds the
	// configured bound. The write is rejected before reaching the backend.
	ErrPayloadTooLarge = errors.New("session: payload too large")
)
