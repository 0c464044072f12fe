// Package pgstore provides a PostgreSQL-backed session store on pgx.
//
// One row per session; every operation guards on expires_at in the WHERE
// clause, so expired rows behave as absent without a reaper on the request
// path. Sliding loads fold the read and the expiry extension into a single
// UPDATE ... RETURNING. Schema creation is the integrator's job; the
// expected DDL is exported as the Schema constant for embedding in
// migration tooling.
//
//	pool, err := pg.Connect(ctx, pgCfg)
//	if err != nil {
//		return err
//	}
//	store := pgstore.New[AppData](pool, session.WithSlidingExpiration(false))
//	go session.RunCleanup(ctx, store, cfg.CleanupInterval, logger)
//
// New accepts anything satisfying the DB interface, so session writes can
// join a caller-managed pgx transaction.
package pgstore
