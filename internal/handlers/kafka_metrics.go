package handlers

import (
	"net/http"

	"travel-map/internal/logger"
	"travel-map/internal/services"
)

// KafkaMetricsHandler - хендлер статистики обработки событий геолокации и маркеров
type KafkaMetricsHandler struct {
	metricsService services.KafkaMetricsServiceInterface
	log            *logger.Logger
}

func NewKafkaMetricsHandler(metricsService services.KafkaMetricsServiceInterface, log *logger.Logger) *KafkaMetricsHandler {
	return &KafkaMetricsHandler{
		metricsService: metricsService,
		log:            log,
	}
}

func (h *KafkaMetricsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	data := h.metricsService.GetStatistics()
	h.log.Debug("Kafka metrics obtained successfully")
	writeJSONResponse(w, http.StatusOK, data)
}
