// Package redis provides Redis client initialization and health checking,
// primarily as the connection layer for the Redis session store.
//
// Connect validates the connection URL, establishes the client with retry
// logic for transient network issues, and verifies connectivity with a ping
// before returning. Healthcheck returns a probe function for readiness
// endpoints.
//
//	cfg := redis.Config{ConnectionURL: "redis://localhost:6379/0"}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	store := redisstore.New[AppData](client, "session:")
//
// Both redis:// and rediss:// (TLS) URL schemes are supported. Errors are
// stable sentinels (ErrEmptyConnectionURL, ErrFailedToParseRedisConnString,
// ErrRedisNotReady, ErrHealthcheckFailed) checkable with errors.Is.
package redis
