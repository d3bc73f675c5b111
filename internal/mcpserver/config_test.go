package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearSchemagraphEnv clears all SCHEMAGRAPH_* env vars to isolate tests from the ambient environment.
func clearSchemagraphEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SCHEMAGRAPH_CACHE_ENABLED", "SCHEMAGRAPH_CACHE_MAX_SIZE",
		"SCHEMAGRAPH_CACHE_TTL", "SCHEMAGRAPH_CACHE_SWEEP_INTERVAL",
		"SCHEMAGRAPH_VALIDATE_FORMATS", "SCHEMAGRAPH_ERROR_LIMIT",
		"SCHEMAGRAPH_MAX_INLINE_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearSchemagraphEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.True(t, c.ValidateFormats)
	assert.Equal(t, 100, c.ErrorLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearSchemagraphEnv(t)
	t.Setenv("SCHEMAGRAPH_CACHE_ENABLED", "false")
	t.Setenv("SCHEMAGRAPH_CACHE_MAX_SIZE", "50")
	t.Setenv("SCHEMAGRAPH_CACHE_TTL", "30m")
	t.Setenv("SCHEMAGRAPH_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("SCHEMAGRAPH_VALIDATE_FORMATS", "false")
	t.Setenv("SCHEMAGRAPH_ERROR_LIMIT", "25")
	t.Setenv("SCHEMAGRAPH_MAX_INLINE_SIZE", "5242880")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.False(t, c.ValidateFormats)
	assert.Equal(t, 25, c.ErrorLimit)
	assert.Equal(t, int64(5242880), c.MaxInlineSize)
}

func TestLoadConfig_InvalidFallsBack(t *testing.T) {
	clearSchemagraphEnv(t)
	t.Setenv("SCHEMAGRAPH_CACHE_ENABLED", "maybe")
	t.Setenv("SCHEMAGRAPH_CACHE_MAX_SIZE", "lots")
	t.Setenv("SCHEMAGRAPH_CACHE_TTL", "soon")
	t.Setenv("SCHEMAGRAPH_MAX_INLINE_SIZE", "big")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
}
