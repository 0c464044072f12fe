package session

import (
	"context"
	"time"

	"github.com/authkit-dev/authkit/core/token"
)

// Store is the persistence contract for sessions. The five operations are
// the entire surface a backend must implement; the middleware has no other
// coupling to a backend.
//
// Implementations must be safe under arbitrary interleaving of operations
// for different identifiers, and must not lose one of two concurrent saves
// on the same identifier (last write wins, never a byte-level mixture).
type Store[Data any] interface {
	// Create allocates a fresh identifier, persists a new active session
	// with expiry now+ttl, and returns it. Identifier collisions are retried
	// internally with a fresh token before ErrTokenCollision surfaces.
	Create(ctx context.Context, data Data, ttl time.Duration) (Session[Data], error)

	// Load returns the session for id, or ErrNotFound if the id is absent,
	// expired, or revoked. The three causes are deliberately
	// indistinguishable so callers cannot probe for session existence.
	// With sliding expiration configured, a successful load extends the
	// expiry by the full TTL as part of the same operation.
	Load(ctx context.Context, id token.ID) (Session[Data], error)

	// Save overwrites payload, status, and timestamps for an existing id.
	// Returns ErrNotFound if the id no longer exists or has expired; saving
	// never resurrects a reaped session.
	Save(ctx context.Context, sess Session[Data]) error

	// Remove deletes the session. Removing an absent id is not an error.
	Remove(ctx context.Context, id token.ID) error

	// Touch refreshes the expiry to now+TTL without a payload round-trip.
	// Returns ErrNotFound if the id is absent or already expired.
	Touch(ctx context.Context, id token.ID) error
}

// Cleaner is implemented by backends that need periodic reclamation of
// expired records (memory, relational). Backends with native per-key expiry
// do not implement it.
type Cleaner interface {
	// DeleteExpired removes all expired sessions and returns how many
	// records were deleted.
	DeleteExpired(ctx context.Context) (int64, error)
}
