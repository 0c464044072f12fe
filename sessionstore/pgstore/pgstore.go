package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/authkit-dev/authkit/core/session"
	"github.com/authkit-dev/authkit/core/token"
)

// Schema is the DDL this store expects. Creating and migrating the schema
// is the integrator's responsibility; the constant exists so integrators
// can embed it in their own migration tooling.
const Schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id BYTEA PRIMARY KEY,
	payload BYTEA NOT NULL,
	status SMALLINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	last_accessed_at TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expires_at_idx ON sessions (expires_at);
`

// uniqueViolation is the Postgres error code for duplicate primary keys.
const uniqueViolation = "23505"

// createAttempts bounds identifier regeneration before ErrTokenCollision
// surfaces.
const createAttempts = 3

// DB is the query surface the store needs. *pgxpool.Pool satisfies it; a
// transaction does too, if the caller wants session writes inside a larger
// unit of work.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DB = (*pgxpool.Pool)(nil)

// Store is a Postgres-backed session store: one row per session, expiry
// enforced by guarded UPDATEs rather than a reaper on the request path.
type Store[Data any] struct {
	db  DB
	cfg session.Config
}

var _ session.Store[string] = (*Store[string])(nil)

// New creates a Postgres session store on the provided pool or transaction.
func New[Data any](db DB, opts ...session.Option) *Store[Data] {
	return &Store[Data]{
		db:  db,
		cfg: session.ApplyOptions(session.DefaultConfig(), opts),
	}
}

// Create inserts a new active session row. A primary-key collision, which
// only a failed entropy source makes plausible, is retried with a fresh
// identifier before ErrTokenCollision surfaces.
func (s *Store[Data]) Create(ctx context.Context, data Data, ttl time.Duration) (session.Session[Data], error) {
	if ttl <= 0 {
		ttl = s.cfg.TTL
	}

	payload, err := session.EncodePayload(data, s.cfg.MaxPayloadSize)
	if err != nil {
		return session.Session[Data]{}, err
	}

	now := time.Now()
	for range createAttempts {
		id := token.New()

		_, err := s.db.Exec(ctx,
			`INSERT INTO sessions (id, payload, status, created_at, last_accessed_at, expires_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id[:], payload, session.StatusActive, now, now, now.Add(ttl),
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				continue
			}
			return session.Session[Data]{}, backendErr(err)
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
// extension are one UPDATE ... RETURNING, so a concurrent Remove cannot
// produce a lost update. Absent, expired, and revoked rows are all
// ErrNotFound.
func (s *Store[Data]) Load(ctx context.Context, id token.ID) (session.Session[Data], error) {
	now := time.Now()

	var (
		payload        []byte
		status         session.Status
		createdAt      time.Time
		lastAccessedAt time.Time
		expiresAt      time.Time
		err            error
	)

	if s.cfg.SlidingExpiration {
		expiresAt = now.Add(s.cfg.TTL)
		lastAccessedAt = now
		status = session.StatusActive
		err = s.db.QueryRow(ctx,
			`UPDATE sessions SET expires_at = $2, last_accessed_at = $3
			 WHERE id = $1 AND status = $4 AND expires_at > $3
			 RETURNING payload, created_at`,
			id[:], expiresAt, now, session.StatusActive,
		).Scan(&payload, &createdAt)
	} else {
		err = s.db.QueryRow(ctx,
			`SELECT payload, status, created_at, last_accessed_at, expires_at
			 FROM sessions
			 WHERE id = $1 AND status = $2 AND expires_at > $3`,
			id[:], session.StatusActive, now,
		).Scan(&payload, &status, &createdAt, &lastAccessedAt, &expiresAt)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return session.Session[Data]{}, session.ErrNotFound
	}
	if err != nil {
		return session.Session[Data]{}, backendErr(err)
	}

	data, err := session.DecodePayload[Data](payload)
	if err != nil {
		return session.Session[Data]{}, err
	}

	return session.Session[Data]{
		ID:             id,
		Data:           data,
		CreatedAt:      createdAt,
		LastAccessedAt: lastAccessedAt,
		ExpiresAt:      expiresAt,
		Status:         status,
	}, nil
}

// Save overwrites an existing row. The WHERE clause guards on expiry, so a
// save against an already-expired or already-removed row affects zero rows
// and surfaces as ErrNotFound instead of resurrecting the identifier.
func (s *Store[Data]) Save(ctx context.Context, sess session.Session[Data]) error {
	payload, err := session.EncodePayload(sess.Data, s.cfg.MaxPayloadSize)
	if err != nil {
		return err
	}

	now := time.Now()
	tag, err := s.db.Exec(ctx,
		`UPDATE sessions SET payload = $2, status = $3, last_accessed_at = $4, expires_at = $5
		 WHERE id = $1 AND expires_at > $4`,
		sess.ID[:], payload, sess.Status, now, sess.ExpiresAt,
	)
	if err != nil {
		return backendErr(err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}

// Remove deletes the session row. Removing an absent id is a no-op.
func (s *Store[Data]) Remove(ctx context.Context, id token.ID) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id[:]); err != nil {
		return backendErr(err)
	}
	return nil
}

// Touch refreshes the expiry without touching the payload column.
func (s *Store[Data]) Touch(ctx context.Context, id token.ID) error {
	now := time.Now()
	tag, err := s.db.Exec(ctx,
		`UPDATE sessions SET expires_at = $2, last_accessed_at = $3
		 WHERE id = $1 AND status = $4 AND expires_at > $3`,
		id[:], now.Add(s.cfg.TTL), now, session.StatusActive,
	)
	if err != nil {
		return backendErr(err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}

// DeleteExpired removes all expired rows and returns the count. Intended
// for an external scheduled job or session.RunCleanup, never the request
// path. Implements session.Cleaner.
func (s *Store[Data]) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, time.Now())
	if err != nil {
		return 0, backendErr(err)
	}
	return tag.RowsAffected(), nil
}

// backendErr maps driver failures onto the store error taxonomy while
// preserving the underlying cause for logs.
func backendErr(err error) error {
	return errors.Join(session.ErrBackendUnavailable, fmt.Errorf("pgstore: %w", err))
}
