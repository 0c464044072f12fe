// Package redisstore provides a Redis-backed session store.
//
// Each session is a single key whose native TTL carries the session expiry,
// so expired sessions vanish without any sweeper. Creation uses SET NX for
// atomic collision detection, sliding loads use GETEX so the read and the
// expiry extension are one command, and saves use SET XX so a session that
// ended concurrently is never resurrected.
//
//	client, err := redis.Connect(ctx, redisCfg)
//	if err != nil {
//		return err
//	}
//	store := redisstore.New[AppData](client, "session:", session.WithTTL(12*time.Hour))
//
// The store accepts any redis.UniversalClient, so standalone servers,
// sentinels, and clusters all work unchanged.
package redisstore
