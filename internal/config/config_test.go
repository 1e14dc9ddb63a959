package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
		t.Setenv("RATING_CACHE_TTL", "30s")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5433", cfg.DBPort)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, 30*time.Second, cfg.RatingCacheTTL)
	})

	t.Run("Defaults", func(t *testing.T) {
		setRequired(t)
		t.Setenv("APP_PORT", "")
		t.Setenv("DB_PORT", "")
		t.Setenv("KAFKA_BROKERS", "")
		t.Setenv("JWT_TTL", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "disable", cfg.DBSSLMode)
		assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
		assert.Equal(t, "marketplace.orders", cfg.KafkaOrderTopic)
		assert.Nil(t, cfg.KafkaBrokers)
	})

	t.Run("Missing DB host", func(t *testing.T) {
		t.Setenv("DB_HOST", "")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := LoadConfig()
		assert.ErrorIs(t, err, ErrMissingDBHost)
		assert.Nil(t, cfg)
	})

	t.Run("Missing JWT secret", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig()
		assert.ErrorIs(t, err, ErrMissingJWTSecret)
	})

	t.Run("Invalid duration", func(t *testing.T) {
		setRequired(t)
		t.Setenv("JWT_TTL", "forever")

		_, err := LoadConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_TTL")
	})
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "marketplace")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "marketplace", cfg.DBName)

	t.Setenv("DB_HOST", "")
	_, err = LoadDatabaseConfig()
	assert.ErrorIs(t, err, ErrMissingDBHost)
}
