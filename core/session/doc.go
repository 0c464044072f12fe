// Package session defines the session entity and the persistence contract
// shared by all store backends.
//
// A Session carries an unguessable identifier, an application-defined
// payload, timestamps, and a lifecycle status. The Store interface is the
// entire contract a backend must implement: Create, Load, Save, Remove, and
// Touch. Three interchangeable backends live under sessionstore: an
// in-process memory store, a Redis store, and a Postgres store.
//
// # Lifecycle
//
// Sessions are created only by an explicit Create, never implicitly on a
// lookup miss. Expiry is lazy: a load past ExpiresAt reports ErrNotFound
// with no background sweep required for correctness. Backends that hold
// expired records (memory, Postgres) implement Cleaner and reclaim space
// via RunCleanup or an external scheduled job.
//
// # Concurrency
//
// Stores are safe for concurrent use. Operations on different identifiers
// never interfere; concurrent saves on the same identifier resolve to
// exactly one of the submitted payloads (last write wins). The middleware
// holds the authoritative copy of a session for the duration of one request
// and hands it back to the store when the request ends.
//
// Typical wiring:
//
//	store := memory.New[AppData](session.WithTTL(12 * time.Hour))
//
//	sess, err := store.Create(ctx, AppData{UserID: id}, 12*time.Hour)
//	if err != nil {
//		return err
//	}
//
//	loaded, err := store.Load(ctx, sess.ID)
//	if errors.Is(err, session.ErrNotFound) {
//		// absent, expired, or revoked; the caller cannot tell which
//	}
package session
