// Package pg provides PostgreSQL connection pool management and health
// checking, primarily as the connection layer for the Postgres session
// store.
//
// Connect parses the connection string, applies pool sizing from Config,
// and verifies connectivity with retries before returning the pool. Schema
// creation and migration stay with the integrator; pgstore.Schema carries
// the DDL the session store expects.
//
//	cfg := pg.Config{ConnectionString: os.Getenv("PG_CONN_URL")}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	store := pgstore.New[AppData](pool)
package pg
