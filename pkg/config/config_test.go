package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "legacy.db", cfg.Legacy.SQLitePath)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.NotEmpty(t, cfg.Postgres.DSN)
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SQLITE_PATH", "/data/old-erp.db")
	t.Setenv("BACKUP_ENCRYPTION_KEY", "hunter2")

	cfg := New()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/data/old-erp.db", cfg.Legacy.SQLitePath)
	assert.Equal(t, "hunter2", cfg.Backup.EncryptionKey)
}
