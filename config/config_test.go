package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/padel")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DEFAULT_SLOT_MINUTES", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("SNAPSHOT_CRON", "")
	t.Setenv("SNAPSHOT_TOURNAMENTS", " t1 , ,t2")
	t.Setenv("R2_ACCOUNT_ID", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_CONNECT_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.DBConnectTimeout)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 90, cfg.DefaultSlotMinutes)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "*/15 * * * *", cfg.SnapshotCron)
	assert.Equal(t, []string{"t1", "t2"}, cfg.SnapshotTournaments)
	assert.False(t, cfg.R2Enabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}},
		{"port not a number", map[string]string{"SERVER_PORT": "http"}},
		{"port out of range", map[string]string{"SERVER_PORT": "70000"}},
		{"zero slot duration", map[string]string{"DEFAULT_SLOT_MINUTES": "0"}},
		{"smtp port not a number", map[string]string{"SMTP_PORT": "x"}},
		{"zero pool size", map[string]string{"DB_MAX_OPEN_CONNS": "0"}},
		{"connect timeout not a number", map[string]string{"DB_CONNECT_TIMEOUT_SECONDS": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/padel")
			t.Setenv("SERVER_PORT", "")
			t.Setenv("DEFAULT_SLOT_MINUTES", "")
			t.Setenv("SMTP_PORT", "")
			t.Setenv("DB_MAX_OPEN_CONNS", "")
			t.Setenv("DB_CONNECT_TIMEOUT_SECONDS", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
