package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	mu    sync.RWMutex
	cache = make(map[reflect.Type]any)
)

// Load parses environment variables into cfg, which must be a non-nil
// pointer to a struct with `env` tags. Each struct type is parsed once per
// process; later calls receive the cached value, so every consumer of a
// config type observes identical settings.
func Load(cfg any) error {
	dotenvOnce.Do(func() {
		// Missing .env files are normal outside local development.
		_ = godotenv.Load()
	})

	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: expected non-nil struct pointer, got %T", cfg)
	}
	t := v.Elem().Type()

	mu.RLock()
	cached, ok := cache[t]
	mu.RUnlock()
	if ok {
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t, err)
	}

	mu.Lock()
	cache[t] = v.Elem().Interface()
	mu.Unlock()

	return nil
}

// MustLoad is Load with a panic on failure, for application startup where
// a missing required variable should stop the process.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
