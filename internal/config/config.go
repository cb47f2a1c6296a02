package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"travel-map/internal/models"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// ConfigPathEnvVar - переменная окружения с путём до YAML-файла конфигурации
	ConfigPathEnvVar = "CONFIG_PATH"
	// EnvPrefix - префикс переменных окружения. Вложенность задаётся "__": TRAVELMAP_REDIS__HOST
	EnvPrefix = "TRAVELMAP_"
)

// Config - конфигурация приложения
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Database    DatabaseConfig    `koanf:"database"`
	Redis       RedisConfig       `koanf:"redis"`
	Kafka       KafkaConfig       `koanf:"kafka"`
	Geolocation GeolocationConfig `koanf:"geolocation"`
	Log         LogConfig         `koanf:"log"`
}

// ServerConfig - настройки HTTP-сервера
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            string        `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Сессия экрана карты закрывается, если к ней не обращались дольше SessionIdleTTL
	SessionIdleTTL       time.Duration `koanf:"session_idle_ttl"`
	SessionSweepInterval time.Duration `koanf:"session_sweep_interval"`
}

// DatabaseConfig - настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
}

// DSN возвращает строку подключения для lib/pq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig - настройки подключения к Redis
type RedisConfig struct {
	Host     string        `koanf:"host"`
	Port     string        `koanf:"port"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// TopicsConfig - имена топиков Kafka
type TopicsConfig struct {
	Locations  string `koanf:"locations"`
	Markers    string `koanf:"markers"`
	DeadLetter string `koanf:"dead_letter"`
}

// KafkaConfig - настройки Kafka
type KafkaConfig struct {
	Brokers         []string     `koanf:"brokers"`
	GroupID         string       `koanf:"group_id"`
	Topics          TopicsConfig `koanf:"topics"`
	MonitorInterval int          `koanf:"monitor_interval"` // в минутах
	ConsumerLag     int64        `koanf:"consumer_lag"`
}

/*
GeolocationConfig - настройки внешних геосервисов.
GeolocationConfig.YandexAPIKey - API-ключ Яндекс-Геокодера
GeolocationConfig.OpenrouteAPIKey - API-ключ OpenrouteService для построения пеших маршрутов
GeolocationConfig.GeocodeRatePerSecond - ограничение частоты запросов к геокодеру (Nominatim разрешает 1 rps)
*/
type GeolocationConfig struct {
	GeocoderProvider     string        `koanf:"geocoder_provider"`
	YandexAPIKey         string        `koanf:"yandex_api_key"`
	YandexURL            string        `koanf:"yandex_url"`
	NominatimURL         string        `koanf:"nominatim_url"`
	OpenrouteAPIKey      string        `koanf:"openroute_api_key"`
	OpenrouteURL         string        `koanf:"openroute_url"`
	RequestTimeout       time.Duration `koanf:"request_timeout"`
	GeocodeRatePerSecond float64       `koanf:"geocode_rate_per_second"`
}

// LogConfig - настройки логгера
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json или text
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                 "0.0.0.0",
			Port:                 "8080",
			ShutdownTimeout:      15 * time.Second,
			SessionIdleTTL:       30 * time.Minute,
			SessionSweepInterval: time.Minute,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			Name:     "travel_map",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			CacheTTL: 15 * time.Hour,
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			GroupID: "travel-map",
			Topics: TopicsConfig{
				Locations:  "device_locations",
				Markers:    "markers",
				DeadLetter: "dead_letter_queue",
			},
			MonitorInterval: 1,
			ConsumerLag:     1000,
		},
		Geolocation: GeolocationConfig{
			GeocoderProvider:     models.GeocoderProviderYandex,
			YandexURL:            models.YandexGeocoderURL,
			NominatimURL:         models.NominatimSearchURL,
			OpenrouteURL:         models.OpenrouteDirectionsURL,
			RequestTimeout:       5 * time.Second,
			GeocodeRatePerSecond: 1,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load собирает конфигурацию из трёх слоёв: значения по умолчанию, YAML-файл и переменные окружения
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envTransform переводит TRAVELMAP_KAFKA__BROKERS=a,b в ключ kafka.brokers со списком значений
func envTransform(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")

	if key == "kafka.brokers" {
		brokers := make([]string, 0)
		for _, b := range strings.Split(value, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		return key, brokers
	}
	return key, value
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.SessionIdleTTL <= 0 || c.Server.SessionSweepInterval <= 0 {
		return fmt.Errorf("session idle ttl and sweep interval must be positive")
	}
	switch c.Geolocation.GeocoderProvider {
	case models.GeocoderProviderYandex, models.GeocoderProviderNominatim:
	default:
		return fmt.Errorf("unknown geocoder provider %q", c.Geolocation.GeocoderProvider)
	}
	if c.Geolocation.GeocodeRatePerSecond <= 0 {
		return fmt.Errorf("geocode rate must be positive")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("at least one kafka broker is required")
	}
	return nil
}
