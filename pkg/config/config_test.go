package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10, cfg.Dashboard.DefaultPageLimit)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("API_BASE_URL", "https://api.okami.test/v1/")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.test, https://b.test ,")
	t.Setenv("DEFAULT_PAGE_LIMIT", "25")
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("REPORTS_SIGNING_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.okami.test/v1", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 25, cfg.Dashboard.DefaultPageLimit)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "s3cret", cfg.Reports.SigningSecret)
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
