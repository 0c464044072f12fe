package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/authkit-dev/authkit/core/session"
	"github.com/authkit-dev/authkit/core/token"
)

// DefaultPrefix namespaces session keys so they cannot collide with
// unrelated data in a shared Redis instance.
const DefaultPrefix = "session:"

// createAttempts bounds identifier regeneration before ErrTokenCollision
// surfaces.
const createAttempts = 3

// record is the stored value: the serialized session minus the identifier,
// which lives in the key. Expiry is carried by the key's native TTL, the
// single source of truth for session lifetime in this backend.
type record struct {
	Payload        json.RawMessage `json:"payload"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	Status         session.Status  `json:"status"`
}

// Store is a Redis-backed session store. Each session is one key; Redis
// per-key expiry implements session expiry, so no sweeper is needed.
type Store[Data any] struct {
	client redis.UniversalClient
	cfg    session.Config
	prefix string
}

var _ session.Store[string] = (*Store[string])(nil)

// New creates a Redis session store on the provided client handle. An empty
// prefix falls back to DefaultPrefix.
func New[Data any](client redis.UniversalClient, prefix string, opts ...session.Option) *Store[Data] {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store[Data]{
		client: client,
		cfg:    session.ApplyOptions(session.DefaultConfig(), opts),
		prefix: prefix,
	}
}

func (s *Store[Data]) key(id token.ID) string {
	return s.prefix + id.String()
}

// Create persists a new active session under a fresh key. SET NX detects
// identifier collisions atomically; a colliding token is regenerated before
// ErrTokenCollision surfaces.
func (s *Store[Data]) Create(ctx context.Context, data Data, ttl time.Duration) (session.Session[Data], error) {
	if ttl <= 0 {
		ttl = s.cfg.TTL
	}

	payload, err := session.EncodePayload(data, s.cfg.MaxPayloadSize)
	if err != nil {
		return session.Session[Data]{}, err
	}

	now := time.Now()
	val, err := json.Marshal(record{
		Payload:        payload,
		CreatedAt:      now,
		LastAccessedAt: now,
		Status:         session.StatusActive,
	})
	if err != nil {
		return session.Session[Data]{}, fmt.Errorf("redisstore: encode session: %w", err)
	}

	for range createAttempts {
		id := token.New()

		ok, err := s.client.SetNX(ctx, s.key(id), val, ttl).Result()
		if err != nil {
			return session.Session[Data]{}, backendErr(err)
		}
		if !ok {
			continue
		}

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

// Load returns the session for id. With sliding expiration the read and the
// expiry extension are one GETEX command, so concurrent loads cannot race
// on a partial update. Absent, expired, and revoked sessions are all
// ErrNotFound.
func (s *Store[Data]) Load(ctx context.Context, id token.ID) (session.Session[Data], error) {
	now := time.Now()

	var (
		raw       []byte
		expiresAt time.Time
	)

	if s.cfg.SlidingExpiration {
		b, err := s.client.GetEx(ctx, s.key(id), s.cfg.TTL).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			return session.Session[Data]{}, session.ErrNotFound
		case err != nil:
			return session.Session[Data]{}, backendErr(err)
		}
		raw = b
		expiresAt = now.Add(s.cfg.TTL)
	} else {
		// One round trip for both the value and the remaining lifetime.
		pipe := s.client.Pipeline()
		getCmd := pipe.Get(ctx, s.key(id))
		ttlCmd := pipe.PTTL(ctx, s.key(id))
		if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
			return session.Session[Data]{}, backendErr(err)
		}
		if errors.Is(getCmd.Err(), redis.Nil) {
			return session.Session[Data]{}, session.ErrNotFound
		}

		b, err := getCmd.Bytes()
		if err != nil {
			return session.Session[Data]{}, backendErr(err)
		}
		remaining := ttlCmd.Val()
		if remaining <= 0 {
			// A session key without a TTL is not ours to return.
			return session.Session[Data]{}, session.ErrNotFound
		}
		raw = b
		expiresAt = now.Add(remaining)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return session.Session[Data]{}, fmt.Errorf("redisstore: decode session: %w", err)
	}
	if rec.Status != session.StatusActive {
		return session.Session[Data]{}, session.ErrNotFound
	}

	data, err := session.DecodePayload[Data](rec.Payload)
	if err != nil {
		return session.Session[Data]{}, err
	}

	lastAccessed := rec.LastAccessedAt
	if s.cfg.SlidingExpiration {
		lastAccessed = now
	}

	return session.Session[Data]{
		ID:             id,
		Data:           data,
		CreatedAt:      rec.CreatedAt,
		LastAccessedAt: lastAccessed,
		ExpiresAt:      expiresAt,
		Status:         rec.Status,
	}, nil
}

// Save overwrites the stored session. SET XX refuses to recreate a key that
// expired or was removed, so a stale save surfaces as ErrNotFound instead
// of resurrecting the identifier.
func (s *Store[Data]) Save(ctx context.Context, sess session.Session[Data]) error {
	now := time.Now()
	ttl := sess.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return session.ErrNotFound
	}

	payload, err := session.EncodePayload(sess.Data, s.cfg.MaxPayloadSize)
	if err != nil {
		return err
	}

	val, err := json.Marshal(record{
		Payload:        payload,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: now,
		Status:         sess.Status,
	})
	if err != nil {
		return fmt.Errorf("redisstore: encode session: %w", err)
	}

	ok, err := s.client.SetXX(ctx, s.key(sess.ID), val, ttl).Result()
	if err != nil {
		return backendErr(err)
	}
	if !ok {
		return session.ErrNotFound
	}
	return nil
}

// Remove deletes the session key. Removing an absent id is a no-op.
func (s *Store[Data]) Remove(ctx context.Context, id token.ID) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return backendErr(err)
	}
	return nil
}

// Touch refreshes the key's expiry with a single EXPIRE command: no
// read-modify-write cycle, so it stays correct under concurrent access from
// other request instances.
func (s *Store[Data]) Touch(ctx context.Context, id token.ID) error {
	ok, err := s.client.Expire(ctx, s.key(id), s.cfg.TTL).Result()
	if err != nil {
		return backendErr(err)
	}
	if !ok {
		return session.ErrNotFound
	}
	return nil
}

// backendErr maps transport failures onto the store error taxonomy while
// preserving the underlying cause for logs.
func backendErr(err error) error {
	return errors.Join(session.ErrBackendUnavailable, err)
}
