package handlers

import (
	"net/http"

	"travel-map/internal/logger"
	"travel-map/internal/services"
)

// RedisMetricsHandler - хендлер статистики кеша геокодера и маршрутов
type RedisMetricsHandler struct {
	redisService services.RedisServiceInterface
	log          *logger.Logger
}

// NewRedisMetricsHandler возвращает ссылку на экземпляр RedisMetricsHandler
func NewRedisMetricsHandler(redisService services.RedisServiceInterface, log *logger.Logger) *RedisMetricsHandler {
	return &RedisMetricsHandler{redisService: redisService, log: log}
}

// GetStatistics получает статистику кеша
func (h *RedisMetricsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats, err := h.redisService.GetStatistics(r.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed getting statistics")
		writeErrorResponse(w, http.StatusInternalServerError, "Failed getting cache statistics")
		return
	}

	writeJSONResponse(w, http.StatusOK, stats)
}
