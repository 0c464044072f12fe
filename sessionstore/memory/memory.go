package memory

import (
	"context"
	"sync"
	"time"

	"github.com/authkit-dev/authkit/core/session"
	"github.com/authkit-dev/authkit/core/token"
)

// shardCount partitions the keyspace into independently locked maps so
// unrelated sessions never contend on one lock. Must be a power of two.
const shardCount = 16

// createAttempts bounds identifier regeneration before ErrTokenCollision
// surfaces.
const createAttempts = 3

// record is the stored form of a session: everything except the identifier,
// which is the map key, and without the entity's request-scoped dirty flags.
type record[Data any] struct {
	data           Data
	createdAt      time.Time
	lastAccessedAt time.Time
	expiresAt      time.Time
	status         session.Status
}

type shard[Data any] struct {
	mu       sync.RWMutex
	sessions map[token.ID]record[Data]
}

// Store is an in-process session store. Operations never block on I/O, only
// on per-shard lock contention. Expiry is checked lazily on Load; run
// session.RunCleanup against the store to bound memory growth.
type Store[Data any] struct {
	cfg    session.Config
	shards [shardCount]shard[Data]
}

var _ session.Store[string] = (*Store[string])(nil)

// New creates a memory store with the given options applied over
// session.DefaultConfig.
func New[Data any](opts ...session.Option) *Store[Data] {
	s := &Store[Data]{
		cfg: session.ApplyOptions(session.DefaultConfig(), opts),
	}
	for i := range s.shards {
		s.shards[i].sessions = make(map[token.ID]record[Data])
	}
	return s
}

// shardFor picks the partition for an identifier. Identifiers are uniformly
// random, so the first byte is an adequate shard key.
func (s *Store[Data]) shardFor(id token.ID) *shard[Data] {
	return &s.shards[id[0]%shardCount]
}

// Create persists a new active session and returns it.
func (s *Store[Data]) Create(ctx context.Context, data Data, ttl time.Duration) (session.Session[Data], error) {
	if ttl <= 0 {
		ttl = s.cfg.TTL
	}

	if s.cfg.MaxPayloadSize > 0 {
		if _, err := session.EncodePayload(data, s.cfg.MaxPayloadSize); err != nil {
			return session.Session[Data]{}, err
		}
	}

	now := time.Now()
	for range createAttempts {
		id := token.New()
		sh := s.shardFor(id)

		sh.mu.Lock()
		if _, exists := sh.sessions[id]; exists {
			sh.mu.Unlock()
			continue
		}
		sh.sessions[id] = record[Data]{
			data:           data,
			createdAt:      now,
			lastAccessedAt: now,
			expiresAt:      now.Add(ttl),
			status:         session.StatusActive,
		}
		sh.mu.Unlock()

		return session.Session[Data]{
			ID:             id,
			Data:           data,
			CreatedAt:      now,
			LastAccessedAt: now,
			ExpiresAt:      now.Add(ttl),
			Status:         session.StatusActive,
		}, nil
	}

	return session.Session[Data]{}, session.ErrTokenCollision
}

// Load returns the session for id, extending its expiry when sliding
// expiration is configured. Absent, expired, and revoked sessions are all
// reported as ErrNotFound.
func (s *Store[Data]) Load(ctx context.Context, id token.ID) (session.Session[Data], error) {
	sh := s.shardFor(id)
	now := time.Now()

	if !s.cfg.SlidingExpiration {
		sh.mu.RLock()
		rec, ok := sh.sessions[id]
		sh.mu.RUnlock()

		if !ok || rec.status != session.StatusActive || !now.Before(rec.expiresAt) {
			return session.Session[Data]{}, session.ErrNotFound
		}
		return s.toSession(id, rec), nil
	}

	// The sliding extension happens under the same write lock as the
	// lookup, so concurrent loads cannot observe a partial update.
	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec, ok := sh.sessions[id]
	if !ok {
		return session.Session[Data]{}, session.ErrNotFound
	}
	if !now.Before(rec.expiresAt) {
		delete(sh.sessions, id) // lazy expiry reclaims the slot
		return session.Session[Data]{}, session.ErrNotFound
	}
	if rec.status != session.StatusActive {
		return session.Session[Data]{}, session.ErrNotFound
	}

	rec.expiresAt = now.Add(s.cfg.TTL)
	rec.lastAccessedAt = now
	sh.sessions[id] = rec

	return s.toSession(id, rec), nil
}

// Save overwrites payload, status, and timestamps for an existing session.
func (s *Store[Data]) Save(ctx context.Context, sess session.Session[Data]) error {
	if s.cfg.MaxPayloadSize > 0 {
		if _, err := session.EncodePayload(sess.Data, s.cfg.MaxPayloadSize); err != nil {
			return err
		}
	}

	sh := s.shardFor(sess.ID)
	now := time.Now()

	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec, ok := sh.sessions[sess.ID]
	if !ok {
		return session.ErrNotFound
	}
	if !now.Before(rec.expiresAt) {
		delete(sh.sessions, sess.ID)
		return session.ErrNotFound
	}

	sh.sessions[sess.ID] = record[Data]{
		data:           sess.Data,
		createdAt:      rec.createdAt,
		lastAccessedAt: now,
		expiresAt:      sess.ExpiresAt,
		status:         sess.Status,
	}
	return nil
}

// Remove deletes the session. Removing an absent id is a no-op.
func (s *Store[Data]) Remove(ctx context.Context, id token.ID) error {
	sh := s.shardFor(id)

	sh.mu.Lock()
	delete(sh.sessions, id)
	sh.mu.Unlock()

	return nil
}

// Touch refreshes the expiry without reading or writing the payload.
func (s *Store[Data]) Touch(ctx context.Context, id token.ID) error {
	sh := s.shardFor(id)
	now := time.Now()

	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec, ok := sh.sessions[id]
	if !ok || rec.status != session.StatusActive || !now.Before(rec.expiresAt) {
		return session.ErrNotFound
	}

	rec.expiresAt = now.Add(s.cfg.TTL)
	rec.lastAccessedAt = now
	sh.sessions[id] = rec
	return nil
}

// DeleteExpired removes all records whose expiry has passed and returns the
// count. Implements session.Cleaner for use with session.RunCleanup.
func (s *Store[Data]) DeleteExpired(ctx context.Context) (int64, error) {
	now := time.Now()
	var deleted int64

	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for id, rec := range sh.sessions {
			if !now.Before(rec.expiresAt) {
				delete(sh.sessions, id)
				deleted++
			}
		}
		sh.mu.Unlock()
	}

	return deleted, nil
}

func (s *Store[Data]) toSession(id token.ID, rec record[Data]) session.Session[Data] {
	return session.Session[Data]{
		ID:             id,
		Data:           rec.data,
		CreatedAt:      rec.createdAt,
		LastAccessedAt: rec.lastAccessedAt,
		ExpiresAt:      rec.expiresAt,
		Status:         rec.status,
	}
}
