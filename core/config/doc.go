// Package config provides type-safe environment variable loading with
// per-type caching.
//
// The package loads .env files on first use and parses environment
// variables into struct fields via caarlos0/env tags. Each configuration
// type is loaded once per process and cached for subsequent calls:
//
//	type StoreConfig struct {
//		TTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
//		Sliding bool          `env:"SESSION_SLIDING_EXPIRATION" envDefault:"true"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure during startup
//	config.MustLoad(&cfg)
package config
