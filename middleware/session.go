package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/authkit-dev/authkit/core/cookie"
	"github.com/authkit-dev/authkit/core/logger"
	"github.com/authkit-dev/authkit/core/session"
	"github.com/authkit-dev/authkit/core/token"
)

// FailurePolicy decides how a backend outage during session resolution
// affects the request. Failing open vs. closed is a security decision, so
// it is configuration, never a hard-coded behavior.
type FailurePolicy int

const (
	// FailClosed denies service (503) when the session backend is
	// unreachable. The default: an outage never silently turns
	// authenticated traffic into anonymous traffic.
	FailClosed FailurePolicy = iota

	// FailOpen downgrades the request to anonymous when the backend is
	// unreachable. The error is still logged, never swallowed.
	FailOpen
)

type sessionKey struct{}

// sessionState is the per-request arena for the session. The middleware
// owns it for the request's lifetime; handlers access it through the
// package-level accessors and never retain it beyond the request.
type sessionState[Data any] struct {
	sess    session.Session[Data]
	present bool
	newData *Data
}

// SessionConfig configures the session middleware.
type SessionConfig[Data any] struct {
	// Store is the session persistence backend (required).
	Store session.Store[Data]
	// Cookies signs and verifies the session cookie (required).
	Cookies *cookie.Manager
	// CookieName is the session cookie name.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
	// TTL is the lifetime of sessions created through StartSession.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	// CookieOptions are applied to every cookie directive the middleware
	// emits, on top of the manager defaults.
	CookieOptions []cookie.Option
	// Skip defines a function to skip middleware execution for specific
	// requests.
	Skip func(r *http.Request) bool
	// Logger for structured logging (default: slog with io.Discard).
	Logger *slog.Logger
	// OnUnavailable selects fail-closed or fail-open behavior when the
	// store cannot be reached while resolving the cookie.
	OnUnavailable FailurePolicy
	// ClearStaleCookie clears the client's cookie when it references a
	// session that no longer exists.
	ClearStaleCookie bool
	// ErrorHandler renders authentication-infrastructure failures.
	// Default: 503 for backend unavailability, 500 otherwise.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// Session creates middleware that binds sessions to requests via cookies
// using default configuration.
//
// Per request it resolves the session cookie through the store, attaches
// the result to the request context, and after the handler returns persists
// whatever the handler did to the session: removal clears the cookie,
// mutation or creation saves the record and sets the cookie, an untouched
// session emits no cookie directive at all.
func Session[Data any](store session.Store[Data], cookies *cookie.Manager, cookieName string) func(http.Handler) http.Handler {
	return SessionWithConfig(SessionConfig[Data]{
		Store:      store,
		Cookies:    cookies,
		CookieName: cookieName,
	})
}

// SessionWithConfig creates session middleware with custom configuration.
//
// The response is buffered until the session is persisted, so a storage
// failure after the handler ran can still surface as a 5xx instead of a
// half-written page with a broken session.
func SessionWithConfig[Data any](cfg SessionConfig[Data]) func(http.Handler) http.Handler {
	if cfg.Store == nil {
		panic("session middleware: store is required")
	}
	if cfg.Cookies == nil {
		panic("session middleware: cookie manager is required")
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "__session"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	cfg.Logger = logger.Default(cfg.Logger)
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			code := http.StatusInternalServerError
			if errors.Is(err, session.ErrBackendUnavailable) {
				code = http.StatusServiceUnavailable
			}
			http.Error(w, http.StatusText(code), code)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			requestStart := time.Now()
			state := &sessionState[Data]{}
			stale := false

			value, err := cfg.Cookies.GetSigned(r, cfg.CookieName)
			switch {
			case err == nil:
				id, perr := token.Parse(value)
				if perr != nil {
					// Well-signed but malformed value; proceed anonymous.
					stale = true
					break
				}
				sess, lerr := cfg.Store.Load(r.Context(), id)
				switch {
				case lerr == nil:
					state.sess = sess
					state.present = true
				case errors.Is(lerr, session.ErrNotFound):
					// Absent, expired, or revoked: anonymous request.
					stale = true
				default:
					cfg.Logger.LogAttrs(r.Context(), slog.LevelError, "session load failed",
						logger.Component("middleware.session"), logger.Error(lerr))
					if cfg.OnUnavailable == FailClosed {
						cfg.ErrorHandler(w, r, lerr)
						return
					}
				}
			case errors.Is(err, cookie.ErrCookieNotFound):
				// No cookie: anonymous request, nothing to clear.
			default:
				// Tampered or unsigned cookie: anonymous request.
				stale = true
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, state)

			bw := newBufferedWriter(w)
			next.ServeHTTP(bw, r.WithContext(ctx))

			// An aborted request makes no persistence calls: the store is
			// left exactly as it was before the request began.
			if r.Context().Err() != nil {
				return
			}

			directive, sess, err := cfg.persist(r.Context(), state)
			if err != nil {
				cfg.Logger.LogAttrs(r.Context(), slog.LevelError, "session persist failed",
					logger.Component("middleware.session"), logger.Error(err))
				cfg.ErrorHandler(w, r, err)
				return
			}

			if directive == directiveNone && state.present && !state.sess.LastAccessedAt.Before(requestStart) {
				// The load already extended the expiry (sliding
				// expiration); keep the cookie's Max-Age in step.
				directive = directiveSet
				sess = state.sess
			}
			if directive == directiveNone && stale && cfg.ClearStaleCookie {
				directive = directiveClear
			}

			switch directive {
			case directiveSet:
				if err := cfg.setCookie(w, sess); err != nil {
					cfg.Logger.LogAttrs(r.Context(), slog.LevelError, "session cookie write failed",
						logger.Component("middleware.session"), logger.Error(err))
					cfg.ErrorHandler(w, r, err)
					return
				}
			case directiveClear:
				cfg.Cookies.Delete(w, cfg.CookieName)
			}

			if err := bw.flush(); err != nil {
				cfg.Logger.LogAttrs(r.Context(), slog.LevelError, "response flush failed",
					logger.Component("middleware.session"), logger.Error(err))
			}
		})
	}
}

type cookieDirective int

const (
	directiveNone cookieDirective = iota
	directiveSet
	directiveClear
)

// persist resolves the terminal state of the request's session:
// Bound-Removed → Removed, Bound-Dirty → Saved, brand-new → Created.
// ErrNotFound from a save means the session ended concurrently and is
// downgraded to a cookie clear; every other store error is an
// authentication-infrastructure failure.
func (cfg SessionConfig[Data]) persist(ctx context.Context, state *sessionState[Data]) (cookieDirective, session.Session[Data], error) {
	var zero session.Session[Data]

	switch {
	case state.present && state.sess.IsDeleted():
		if err := cfg.Store.Remove(ctx, state.sess.ID); err != nil {
			return directiveNone, zero, err
		}
		return directiveClear, zero, nil

	case state.newData != nil:
		if state.present {
			// A handler started a fresh session over an existing one;
			// the old record must not stay valid.
			if err := cfg.Store.Remove(ctx, state.sess.ID); err != nil {
				return directiveNone, zero, err
			}
		}
		sess, err := cfg.Store.Create(ctx, *state.newData, cfg.TTL)
		if err != nil {
			return directiveNone, zero, err
		}
		return directiveSet, sess, nil

	case state.present && state.sess.IsRotated():
		// Fresh identifier, same payload and remaining lifetime.
		ttl := time.Until(state.sess.ExpiresAt)
		if ttl <= 0 {
			return directiveClear, zero, nil
		}
		sess, err := cfg.Store.Create(ctx, state.sess.Data, ttl)
		if err != nil {
			return directiveNone, zero, err
		}
		if err := cfg.Store.Remove(ctx, state.sess.ID); err != nil {
			return directiveNone, zero, err
		}
		return directiveSet, sess, nil

	case state.present && state.sess.IsModified():
		if err := cfg.Store.Save(ctx, state.sess); err != nil {
			if errors.Is(err, session.ErrNotFound) {
				// Removed or reaped concurrently: session ended, not a crash.
				return directiveClear, zero, nil
			}
			return directiveNone, zero, err
		}
		if !state.sess.IsActive() {
			// A revoked session is persisted but its cookie must not linger.
			return directiveClear, zero, nil
		}
		return directiveSet, state.sess, nil
	}

	return directiveNone, zero, nil
}

func (cfg SessionConfig[Data]) setCookie(w http.ResponseWriter, sess session.Session[Data]) error {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	if maxAge <= 0 {
		cfg.Cookies.Delete(w, cfg.CookieName)
		return nil
	}

	opts := make([]cookie.Option, 0, len(cfg.CookieOptions)+1)
	opts = append(opts, cfg.CookieOptions...)
	opts = append(opts, cookie.WithMaxAge(maxAge))

	return cfg.Cookies.SetSigned(w, cfg.CookieName, sess.ID.String(), opts...)
}

// GetSession retrieves the request's session. The second return value is
// false for anonymous requests.
func GetSession[Data any](ctx context.Context) (session.Session[Data], bool) {
	state, ok := ctx.Value(sessionKey{}).(*sessionState[Data])
	if !ok || !state.present {
		return session.Session[Data]{}, false
	}
	return state.sess, true
}

// MustGetSession retrieves the request's session or panics. Use on routes
// where upstream enforcement guarantees a session exists.
func MustGetSession[Data any](ctx context.Context) session.Session[Data] {
	sess, ok := GetSession[Data](ctx)
	if !ok {
		panic("session not found in request context")
	}
	return sess
}

// SetSession hands a mutated session back to the middleware for
// persistence at the end of the request.
func SetSession[Data any](ctx context.Context, sess session.Session[Data]) {
	if state, ok := ctx.Value(sessionKey{}).(*sessionState[Data]); ok {
		state.sess = sess
		state.present = true
	}
}

// StartSession requests creation of a brand-new session carrying data. The
// record is created and the cookie issued when the request completes;
// sessions are never created implicitly on a lookup miss. If the request
// already carries a session, the old record is removed first.
func StartSession[Data any](ctx context.Context, data Data) {
	if state, ok := ctx.Value(sessionKey{}).(*sessionState[Data]); ok {
		state.newData = &data
	}
}
