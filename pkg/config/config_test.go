package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEnvConfig_Defaults(t *testing.T) {
	var cfg Config
	require.NoError(t, ReadEnvConfig(&cfg))

	assert.Equal(t, "firestore", cfg.Repo.Driver)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.Equal(t, "Asia/Seoul", cfg.Timezone)
	assert.Equal(t, 24*time.Hour, cfg.Repo.Redis.TTL)
}

func TestReadEnvConfig_Overrides(t *testing.T) {
	t.Setenv("REPO_STORE_DRIVER", "postgres")
	t.Setenv("REPO_DB_HOST", "db.internal")
	t.Setenv("REPO_REDIS_ADDR", "localhost:6379")
	t.Setenv("ADMIN_USER_IDS", "1,2")
	t.Setenv("TELEGRAM_ADMIN_IDS", "10,20")
	t.Setenv("REFRESH_INTERVAL", "30s")

	var cfg Config
	require.NoError(t, ReadEnvConfig(&cfg))

	assert.Equal(t, "postgres", cfg.Repo.Driver)
	assert.Equal(t, "db.internal", cfg.Repo.Host)
	assert.Equal(t, "localhost:6379", cfg.Repo.Redis.Addr)
	assert.Equal(t, []string{"1", "2"}, cfg.AdminUserIDs)
	assert.Equal(t, []int64{10, 20}, cfg.TelegramAdminIDs)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
}

func TestLocation(t *testing.T) {
	cfg := Config{Timezone: "Nowhere/Invalid"}
	assert.Equal(t, time.UTC, cfg.Location())
}
