package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-map/internal/config"
	"travel-map/internal/logger"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
)

// ErrCacheMiss возвращается, если ключа нет в кеше
var ErrCacheMiss = errors.New("cache miss")

// Client представляет клиент Redis
type Client struct {
	client  *redis.Client
	log     *logger.Logger
	metrics *RedisMetrics
}

// Connect создает подключение к Redis
func Connect(cfg *config.RedisConfig, log *logger.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Проверка подключения
	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Successfully connected to Redis")

	return NewClient(rdb, log), nil
}

// NewClient оборачивает уже созданный клиент go-redis
func NewClient(rdb *redis.Client, log *logger.Logger) *Client {
	return &Client{
		client:  rdb,
		log:     log,
		metrics: &RedisMetrics{},
	}
}

// Close закрывает подключение к Redis
func (c *Client) Close() error {
	return c.client.Close()
}

// Set устанавливает значение с TTL
func (c *Client) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	err = c.client.Set(ctx, key, data, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	c.log.WithField("key", key).Debug("Value set in Redis")
	return nil
}

// Get получает значение по ключу. Если ключа нет, возвращает ErrCacheMiss
func (c *Client) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("key %s: %w", key, ErrCacheMiss)
		}
		return fmt.Errorf("failed to get key %s: %w", key, err)
	}

	err = json.Unmarshal([]byte(val), dest)
	if err != nil {
		return fmt.Errorf("failed to unmarshal value for key %s: %w", key, err)
	}

	c.log.WithField("key", key).Debug("Value retrieved from Redis")
	return nil
}

// Delete удаляет значение по ключу
func (c *Client) Delete(ctx context.Context, key string) error {
	err := c.client.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	c.log.WithField("key", key).Debug("Key deleted from Redis")
	return nil
}

// Health проверяет состояние Redis
func (c *Client) Health(ctx context.Context) error {
	_, err := c.client.Ping(ctx).Result()
	return err
}

func (c *Client) Hit() { c.metrics.Hit() }

func (c *Client) Miss() { c.metrics.Miss() }

// GetMetrics возвращает число попаданий, промахов и размер базы
func (c *Client) GetMetrics(ctx context.Context) (uint64, uint64, int64, error) {
	hits, misses := c.metrics.Counts()
	cacheSize, err := c.client.DBSize(ctx).Result()
	if err != nil {
		return hits, misses, 0, fmt.Errorf("failed to load cache size: %w", err)
	}
	return hits, misses, cacheSize, nil
}

// GenerateKey генерирует ключ для кеша
func GenerateKey(prefix, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}

// Константы для префиксов ключей
const (
	KeyPrefixGeocode    = "geocode"
	KeyPrefixDirections = "directions"
)
