package services

import (
	"travel-map/internal/kafka"
	"travel-map/internal/models"
)

// SessionStats - источник статистики открытых экранов карты
type SessionStats interface {
	Len() int
	StaleDropped() uint64
}

// KafkaMetricsService - сервис статистики обработки событий геолокации и маркеров
type KafkaMetricsService struct {
	metrics  *kafka.KafkaMetrics
	sessions SessionStats
}

// NewKafkaMetricsService возвращает сервис статистики. sessions может быть nil
func NewKafkaMetricsService(metrics *kafka.KafkaMetrics, sessions SessionStats) *KafkaMetricsService {
	return &KafkaMetricsService{metrics: metrics, sessions: sessions}
}

// GetStatistics возвращает статистику по топикам, отсортированную по имени топика,
// и счётчики экранов карты, которые эти события обновляют
func (s *KafkaMetricsService) GetStatistics() *models.EventStatisticsResponse {
	stats := s.metrics.GetStatistics()
	if s.sessions != nil {
		stats.MapSessions = s.sessions.Len()
		stats.StaleResponsesDropped = s.sessions.StaleDropped()
	}
	return stats
}
