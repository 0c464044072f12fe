package session

import "time"

// Config holds the options every store backend recognizes.
type Config struct {
	// TTL is the session lifetime applied on create and on every sliding
	// extension.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// SlidingExpiration extends the expiry by the full TTL on every
	// successful load, as part of the load itself.
	SlidingExpiration bool `env:"SESSION_SLIDING_EXPIRATION" envDefault:"true"`

	// MaxPayloadSize bounds the serialized payload in bytes.
	// Zero disables the bound.
	MaxPayloadSize int `env:"SESSION_MAX_PAYLOAD_SIZE" envDefault:"65536"`

	// CleanupInterval is the cadence of the background sweep for backends
	// that reclaim expired records themselves.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		TTL:               24 * time.Hour,
		SlidingExpiration: true,
		MaxPayloadSize:    64 * 1024,
		CleanupInterval:   5 * time.Minute,
	}
}

// Option is a functional option for store configuration.
type Option func(*Config)

// WithTTL sets the session time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *Config) {
		if ttl > 0 {
			c.TTL = ttl
		}
	}
}

// WithSlidingExpiration toggles expiry extension on load.
func WithSlidingExpiration(sliding bool) Option {
	return func(c *Config) {
		c.SlidingExpiration = sliding
	}
}

// WithMaxPayloadSize bounds the serialized payload in bytes.
// Zero disables the bound.
func WithMaxPayloadSize(size int) Option {
	return func(c *Config) {
		if size >= 0 {
			c.MaxPayloadSize = size
		}
	}
}

// WithCleanupInterval sets the background sweep cadence.
func WithCleanupInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval > 0 {
			c.CleanupInterval = interval
		}
	}
}

// ApplyOptions copies cfg and applies opts without mutating the original.
func ApplyOptions(cfg Config, opts []Option) Config {
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
