// Package cookie provides HTTP cookie management with HMAC signing and key
// rotation.
//
// The Manager signs values with HMAC-SHA256 so a client cannot forge or
// tamper with cookie contents. Multiple secrets are supported: the first
// signs new cookies, every secret verifies, which lets keys rotate without
// invalidating live sessions.
//
//	manager, err := cookie.New([]string{"your-32-byte-minimum-secret-key!!"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Issue a tamper-proof cookie
//	err = manager.SetSigned(w, "session", sessionID.String(),
//		cookie.WithSecure(true),
//		cookie.WithMaxAge(3600),
//	)
//
//	// Read it back; verification failure means the value was altered
//	value, err := manager.GetSigned(r, "session")
//
// Defaults are secure: Path=/, HttpOnly, SameSite=Lax. Override per cookie
// with functional options or globally at construction.
package cookie
