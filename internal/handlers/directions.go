package handlers

import (
	"errors"
	"net/http"

	"travel-map/internal/logger"
	"travel-map/internal/models"
	"travel-map/internal/services"
)

// DirectionsHandler - построение пешего маршрута по запросу из снимка карты
type DirectionsHandler struct {
	directionsService services.DirectionsServiceInterface
	log               *logger.Logger
}

func NewDirectionsHandler(directionsService services.DirectionsServiceInterface, log *logger.Logger) *DirectionsHandler {
	return &DirectionsHandler{directionsService: directionsService, log: log}
}

// GetDirections превращает DirectionsRequest в путь
func (h *DirectionsHandler) GetDirections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.DirectionsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Mode == "" {
		req.Mode = models.TravelModeWalking
	}
	if req.Mode != models.TravelModeWalking {
		writeErrorResponse(w, http.StatusBadRequest, "only WALKING mode is supported")
		return
	}
	for _, p := range req.Points() {
		if !p.Valid() {
			writeErrorResponse(w, http.StatusBadRequest, models.ErrInvalidCoordinates.Error())
			return
		}
	}

	path, err := h.directionsService.Directions(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrNoRoute) {
			writeErrorResponse(w, http.StatusNotFound, "No route found")
			return
		}
		h.log.WithError(err).Error("Failed to get directions")
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to get directions")
		return
	}

	writeJSONResponse(w, http.StatusOK, path)
}
