package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authkit-dev/authkit/core/config"
)

type storeConfig struct {
	TTL     time.Duration `env:"TEST_SESSION_TTL" envDefault:"24h"`
	Sliding bool          `env:"TEST_SESSION_SLIDING" envDefault:"true"`
	MaxSize int           `env:"TEST_SESSION_MAX_SIZE" envDefault:"65536"`
}

type requiredConfig struct {
	Secret string `env:"TEST_REQUIRED_SECRET,required"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg storeConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, 24*time.Hour, cfg.TTL)
	assert.True(t, cfg.Sliding)
	assert.Equal(t, 65536, cfg.MaxSize)
}

func TestLoad_FromEnvironment(t *testing.T) {
	type envConfig struct {
		TTL time.Duration `env:"TEST_ENV_TTL" envDefault:"1h"`
	}

	t.Setenv("TEST_ENV_TTL", "30m")

	var cfg envConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 30*time.Minute, cfg.TTL)
}

func TestLoad_CachesPerType(t *testing.T) {
	type cachedConfig struct {
		Value string `env:"TEST_CACHED_VALUE" envDefault:"first"`
	}

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	// A later environment change is not observed for an already-loaded type.
	t.Setenv("TEST_CACHED_VALUE", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)

	assert.Error(t, err)
}

func TestLoad_InvalidTarget(t *testing.T) {
	assert.Error(t, config.Load(nil))
	assert.Error(t, config.Load(storeConfig{}))
	assert.Error(t, config.Load((*storeConfig)(nil)))

	var notStruct int
	assert.Error(t, config.Load(&notStruct))
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
