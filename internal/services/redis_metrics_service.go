package services

import (
	"context"
	"fmt"

	"travel-map/internal/logger"
	"travel-map/internal/models"
	"travel-map/internal/redis"
)

// RedisService - сервис статистики кеша геосервисов
type RedisService struct {
	source redis.MetricsSource
	log    *logger.Logger
}

// NewRedisService возвращает ссылку на экземпляр RedisService
func NewRedisService(source redis.MetricsSource, log *logger.Logger) *RedisService {
	return &RedisService{source: source, log: log}
}

// GetStatistics возвращает статистику по кешу. Доли попаданий и промахов - в процентах
func (s *RedisService) GetStatistics(ctx context.Context) (*models.CacheMetricsResponse, error) {
	hits, misses, cacheSize, err := s.source.GetMetrics(ctx)
	if err != nil {
		s.log.WithError(err).Error("error getting metrics")
		return nil, fmt.Errorf("failed to get cache metrics: %w", err)
	}
	total := hits + misses

	hitRate := 0.0
	missRate := 0.0
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
		missRate = float64(misses) / float64(total) * 100
	}
	return &models.CacheMetricsResponse{
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		MissRate:  missRate,
		CacheSize: cacheSize,
	}, nil
}
