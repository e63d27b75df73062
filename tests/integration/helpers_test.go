//go:build integration

package integration

import (
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/infrastructure/clients/postgres"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/infrastructure/clients/redis"
	"github.com/schoolhubng/Schooladmindesign/backend/pkg/config"
	"github.com/stretchr/testify/require"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func newTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	cfg := &config.RedisConfig{
		Host:     getEnv("TEST_REDIS_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_REDIS_PORT", 6379),
		Password: getEnv("TEST_REDIS_PASSWORD", ""),
		DB:       getEnvAsInt("TEST_REDIS_DB", 0),
	}

	client, err := redis.NewClient(cfg)
	require.NoError(t, err)
	return client
}

func newTestPostgresClient(t *testing.T) *postgres.Client {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", ""),
		Database: getEnv("TEST_DB_NAME", "school_admin_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}

	client, err := postgres.NewClient(cfg)
	require.NoError(t, err)
	return client
}

func waitForEntityEvent(t *testing.T, ch <-chan *entities.EntityEvent) *entities.EntityEvent {
	t.Helper()

	select {
	case event := <-ch:
		require.NotNil(t, event)
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for entity event")
		return nil
	}
}
