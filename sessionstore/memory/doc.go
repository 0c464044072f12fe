// Package memory provides an in-process session store backed by sharded
// maps.
//
// The store is safe for concurrent use and never blocks on I/O. Expiry is
// enforced lazily on every load and save; pair the store with
// session.RunCleanup to reclaim memory held by expired records:
//
//	store := memory.New[AppData](session.WithTTL(12 * time.Hour))
//	go session.RunCleanup(ctx, store, 5*time.Minute, logger)
//
// All state is lost on process restart, which makes the store a fit for
// tests and single-instance deployments only. Use redisstore or pgstore
// when sessions must survive restarts or be shared between instances.
package memory
