package redis

import (
	"context"
	"time"
)

// RedisClientInterface - интерфейс, реализующий часть методов redis.Client, необходимых сервисам
type RedisClientInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Hit()
	Miss()
}

// MetricsSource - источник статистики кеша
type MetricsSource interface {
	GetMetrics(ctx context.Context) (uint64, uint64, int64, error)
}
