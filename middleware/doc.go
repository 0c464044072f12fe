// Package middleware provides net/http middleware that binds sessions to
// requests via signed cookies.
//
// Per request the session middleware reads the session cookie, resolves it
// through the configured store, attaches the result to the request context,
// runs the wrapped handler, and then persists whatever the handler did:
// deletion removes the record and clears the cookie, mutation or creation
// writes the record and sets the cookie, an untouched session produces no
// cookie directive at all. Requests without a valid cookie proceed as
// anonymous; authentication is opt-in per route, the middleware itself
// never rejects a request for lacking a session.
//
// Usage:
//
//	type AppData struct {
//		UserID string `json:"user_id"`
//	}
//
//	store := memory.New[AppData]()
//	cookies, _ := cookie.New([]string{secret})
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
//		// Issue a session after verifying credentials.
//		middleware.StartSession(r.Context(), AppData{UserID: userID})
//	})
//	mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
//		sess, ok := middleware.GetSession[AppData](r.Context())
//		if !ok {
//			http.Error(w, "unauthorized", http.StatusUnauthorized)
//			return
//		}
//		fmt.Fprint(w, sess.Data.UserID)
//	})
//	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
//		if sess, ok := middleware.GetSession[AppData](r.Context()); ok {
//			sess.Delete()
//			middleware.SetSession(r.Context(), sess)
//		}
//	})
//
//	handler := middleware.Session[AppData](store, cookies, "__session")(mux)
//
// A storage outage during cookie resolution is governed by the configured
// FailurePolicy: FailClosed (default) answers 503, FailOpen logs and
// continues anonymously. Store failures during the persistence step always
// surface as infrastructure failures; the middleware never fabricates an
// anonymous session to mask one.
package middleware
