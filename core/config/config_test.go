package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("SERVER_TIMEZONE", "America/Chicago")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("JWT_ACCESS_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, "0 6 * * *", cfg.Worker.DigestCron)
	assert.Equal(t, "America/Chicago", cfg.Server.Location().String())

	got, ok := GetSafe()
	require.True(t, ok)
	assert.Same(t, cfg, got)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestServerLocation_Fallback(t *testing.T) {
	assert.Equal(t, time.UTC, ServerConfig{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, time.UTC, ServerConfig{}.Location())
}
