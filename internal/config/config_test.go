package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults выполняет тестирование загрузки значений по умолчанию
func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "yandex", cfg.Geolocation.GeocoderProvider)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "device_locations", cfg.Kafka.Topics.Locations)
	assert.Equal(t, 15*time.Hour, cfg.Redis.CacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionIdleTTL)
	assert.Equal(t, time.Minute, cfg.Server.SessionSweepInterval)
}

// TestLoadEnvOverrides выполняет тестирование переопределения параметров через окружение
func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("TRAVELMAP_SERVER__PORT", "9090")
	t.Setenv("TRAVELMAP_SERVER__SESSION_IDLE_TTL", "5m")
	t.Setenv("TRAVELMAP_KAFKA__BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("TRAVELMAP_GEOLOCATION__GEOCODER_PROVIDER", "nominatim")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Server.SessionIdleTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "nominatim", cfg.Geolocation.GeocoderProvider)
}

// TestLoadFile выполняет тестирование загрузки YAML-файла
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "redis:\n  host: cache.local\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cache.local", cfg.Redis.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "6379", cfg.Redis.Port)
}

// TestLoadUnknownProvider выполняет тестирование валидации провайдера геокодера
func TestLoadUnknownProvider(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("TRAVELMAP_GEOLOCATION__GEOCODER_PROVIDER", "google")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=travel_map sslmode=disable",
		cfg.Database.DSN())
}
