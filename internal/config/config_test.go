package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"STRATA_API_URL", "STRATA_API_TOKEN", "STRATA_DB", "STRATA_TIMEZONE",
		"STRATA_REDIS_URL", "STRATA_CACHE_TTL_SECONDS", "STRATA_TIMEOUT_MS",
		"STRATA_MAX_RETRIES", "STRATA_LOG", "STRATA_CONFIG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()

	cfg, err := Load(home, filepath.Join(home, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, Dir, "strata.db"), cfg.DBPath)
	assert.Equal(t, 10000, cfg.TimeoutMs)
	assert.Equal(t, 1, cfg.MaxRetries)
	assert.Equal(t, time.Minute, cfg.CacheTTL())
	assert.False(t, cfg.LogUseCases)
}

func TestLoad_ReadsYAML(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_url: https://plans.example.com
timezone: UTC
redis_url: redis://localhost:6379/0
cache_ttl_seconds: 5
log_use_cases: true
`), 0o600))

	cfg, err := Load(home, path)
	require.NoError(t, err)
	assert.Equal(t, "https://plans.example.com", cfg.APIURL)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL())
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, 10000, cfg.TimeoutMs, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: https://file.example.com\nmax_retries: 3\n"), 0o600))

	t.Setenv("STRATA_API_URL", "https://env.example.com")
	t.Setenv("STRATA_MAX_RETRIES", "0")
	t.Setenv("STRATA_TIMEOUT_MS", "-5")
	t.Setenv("STRATA_LOG", "1")

	cfg, err := Load(home, path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIURL)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 10000, cfg.TimeoutMs, "invalid env values are ignored")
	assert.True(t, cfg.LogUseCases)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: [unterminated\n"), 0o600))

	_, err := Load(home, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestLoad_RejectsUnknownTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("STRATA_TIMEZONE", "Atlantis/Central")
	home := t.TempDir()

	_, err := Load(home, filepath.Join(home, "none.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Atlantis/Central")
}

func TestDefaultPath(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, filepath.Join("/home/u", Dir, "config.yaml"), DefaultPath("/home/u"))
	t.Setenv("STRATA_CONFIG", "/etc/strata.yaml")
	assert.Equal(t, "/etc/strata.yaml", DefaultPath("/home/u"))
}

func TestWriteDefault(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	path := filepath.Join(home, Dir, "config.yaml")

	wrote, err := WriteDefault(path)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = WriteDefault(path)
	require.NoError(t, err)
	assert.False(t, wrote, "existing file is left alone")

	cfg, err := Load(home, path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.CacheTTLSeconds)
}
