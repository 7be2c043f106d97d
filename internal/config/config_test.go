package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "catalog", cfg.RPC.SubjectPrefix)
	assert.Equal(t, 5*time.Second, cfg.RPC.Timeout)
	assert.Equal(t, EventsDriverNATS, cfg.Events.Driver)
	assert.Equal(t, "book-author-group", cfg.Events.Group)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NATS_URL", "nats://bus:4222")
	t.Setenv("AUTHOR_SERVICE_URL", "nats://authors:4222")
	t.Setenv("RPC_TIMEOUT", "750ms")
	t.Setenv("EVENTS_DRIVER", "ASYNQ")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "nats://bus:4222", cfg.RPC.BookURL)
	assert.Equal(t, "nats://authors:4222", cfg.RPC.AuthorURL)
	assert.Equal(t, "nats://bus:4222", cfg.Events.NATSURL)
	assert.Equal(t, 750*time.Millisecond, cfg.RPC.Timeout)
	assert.Equal(t, EventsDriverAsynq, cfg.Events.Driver)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad duration", "RPC_TIMEOUT", "soon"},
		{"zero timeout", "RPC_TIMEOUT", "0s"},
		{"unknown events driver", "EVENTS_DRIVER", "kafka"},
		{"unknown store", "STORE_DRIVER", "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestProductionPostgresNeedsPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_PASSWORD", "secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestDBConfig(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_MAX_RETRIES", "2")

	cfg, err := Load()
	require.NoError(t, err)

	dbc, err := cfg.DBConfig()
	require.NoError(t, err)
	assert.Equal(t, "db", dbc.Host)
	assert.Equal(t, int32(25), dbc.MaxConns)
	assert.Equal(t, 2, dbc.MaxRetries)
	assert.Equal(t, time.Second, dbc.RetryDelay)

	t.Setenv("DB_RETRY_DELAY", "later")
	_, err = cfg.DBConfig()
	assert.Error(t, err)
}
