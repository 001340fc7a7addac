package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, DriverMemory, cfg.StorageDriver)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "9090", cfg.MetricsPort)
		assert.Equal(t, "movie_lookup", cfg.DB.DBName)
		assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
		assert.Empty(t, cfg.Telegram.Token)
	})

	t.Run("StorageDriverFromEnv", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", DriverMongo)
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, DriverMongo, cfg.StorageDriver)
	})

	t.Run("RejectsUnknownDriver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "cassandra")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("TelegramAdminID", func(t *testing.T) {
		t.Setenv("TELEGRAM_ADMIN_ID", "123456")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, int64(123456), cfg.Telegram.AdminID)
	})
}

func TestDSN(t *testing.T) {
	d := DBConfig{
		Host: "db", Port: 5433, User: "svc", Password: "secret",
		DBName: "movies", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5433 user=svc password=secret dbname=movies sslmode=disable",
		d.DSN())
}
