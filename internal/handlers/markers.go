package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"travel-map/internal/kafka"
	"travel-map/internal/logger"
	"travel-map/internal/models"
	"travel-map/internal/services"
)

var markerColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// MarkerHandler представляет обработчик маркеров для админки карты
type MarkerHandler struct {
	markerService services.MarkerServiceInterface
	producer      kafka.ProducerInterface
	log           *logger.Logger
}

// NewMarkerHandler создает новый обработчик маркеров
func NewMarkerHandler(markerService services.MarkerServiceInterface, producer kafka.ProducerInterface, log *logger.Logger) *MarkerHandler {
	return &MarkerHandler{
		markerService: markerService,
		producer:      producer,
		log:           log,
	}
}

// GetMarkers возвращает список маркеров. Параметр search фильтрует по названию без учёта регистра
func (h *MarkerHandler) GetMarkers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	markers, err := h.markerService.ListMarkers(r.Context(), strings.TrimSpace(r.URL.Query().Get("search")))
	if err != nil {
		h.log.WithError(err).Error("Failed to get markers")
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to get markers")
		return
	}
	if markers == nil {
		markers = []models.MarkerRecord{}
	}

	writeJSONResponse(w, http.StatusOK, markers)
}

// GetMarker получает маркер по ID
func (h *MarkerHandler) GetMarker(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	markerID, err := extractUUIDFromPath(r.URL.Path, apiMarkerPrefix)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid marker ID")
		return
	}

	marker, err := h.markerService.GetMarker(r.Context(), markerID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get marker")
		return
	}

	writeJSONResponse(w, http.StatusOK, marker)
}

// CreateMarker создает новый маркер
func (h *MarkerHandler) CreateMarker(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.MarkerRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Валидация запроса
	if err := h.validateMarkerRequest(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	marker, err := h.markerService.CreateMarker(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to create marker")
		return
	}

	h.publish(marker.ID, models.MarkerActionCreated)

	h.log.WithField("marker_id", marker.ID).Info("Marker created successfully")
	writeJSONResponse(w, http.StatusCreated, marker)
}

// ReplaceMarker заменяет содержимое маркера, сохраняя его ID и место в списке
func (h *MarkerHandler) ReplaceMarker(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	markerID, err := extractUUIDFromPath(r.URL.Path, apiMarkerPrefix)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid marker ID")
		return
	}

	var req models.MarkerRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validateMarkerRequest(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	marker, err := h.markerService.ReplaceMarker(r.Context(), markerID, &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to replace marker")
		return
	}

	h.publish(marker.ID, models.MarkerActionReplaced)

	h.log.WithField("marker_id", marker.ID).Info("Marker replaced successfully")
	writeJSONResponse(w, http.StatusOK, marker)
}

// DeleteMarker удаляет маркер
func (h *MarkerHandler) DeleteMarker(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	markerID, err := extractUUIDFromPath(r.URL.Path, apiMarkerPrefix)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid marker ID")
		return
	}

	if err := h.markerService.DeleteMarker(r.Context(), markerID); err != nil {
		h.writeServiceError(w, err, "Failed to delete marker")
		return
	}

	h.publish(markerID.String(), models.MarkerActionDeleted)

	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Marker deleted successfully"})
}

// publish отправляет событие marker.changed. Ошибка не возвращается клиенту: маркер уже сохранён
func (h *MarkerHandler) publish(markerID, action string) {
	if err := h.producer.PublishMarkerChanged(markerID, action); err != nil {
		h.log.WithError(err).WithField("marker_id", markerID).Error("Failed to publish marker changed event")
	}
}

func (h *MarkerHandler) writeServiceError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, models.ErrMarkerNotFound):
		writeErrorResponse(w, http.StatusNotFound, "Marker not found")
	case errors.Is(err, models.ErrInvalidCoordinates):
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		h.log.WithError(err).Error(message)
		writeErrorResponse(w, http.StatusInternalServerError, message)
	}
}

// validateMarkerRequest валидирует запрос на создание или замену маркера
func (h *MarkerHandler) validateMarkerRequest(req *models.MarkerRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Route = strings.TrimSpace(req.Route)

	if req.Title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(req.Title) > 255 {
		return fmt.Errorf("title must be no longer than 255 characters")
	}
	if _, err := req.Coordinate.Parse(); err != nil {
		return fmt.Errorf("invalid coordinate: %w", err)
	}
	if req.Color != "" && !markerColorPattern.MatchString(req.Color) {
		return fmt.Errorf("color must be in #RRGGBB format")
	}
	if req.Route == models.NoRouteKey {
		return fmt.Errorf("route name %q is reserved", models.NoRouteKey)
	}
	return nil
}
