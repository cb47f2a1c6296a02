package handlers

import (
	"errors"
	"net/http"
	"strings"

	"travel-map/internal/logger"
	"travel-map/internal/mapscreen"
	"travel-map/internal/models"

	"github.com/google/uuid"
)

// MapSessionRegistry - открытые экраны карты
type MapSessionRegistry interface {
	Open(deviceID string, renderer mapscreen.Renderer) (uuid.UUID, *mapscreen.Coordinator, error)
	Get(id uuid.UUID) (*mapscreen.Coordinator, error)
	Close(id uuid.UUID) error
}

// MapSessionHandler - хендлер экранов карты: снимок для отрисовки и пользовательские события
type MapSessionHandler struct {
	registry MapSessionRegistry
	log      *logger.Logger
}

// NewMapSessionHandler возвращает ссылку на экземпляр MapSessionHandler
func NewMapSessionHandler(registry MapSessionRegistry, log *logger.Logger) *MapSessionHandler {
	return &MapSessionHandler{registry: registry, log: log}
}

// OpenSession открывает экран карты для устройства
func (h *MapSessionHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.OpenMapSessionRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.DeviceID = strings.TrimSpace(req.DeviceID)
	if req.DeviceID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "device id is required")
		return
	}

	id, coordinator, err := h.registry.Open(req.DeviceID, nil)
	if err != nil {
		h.log.WithError(err).Error("Failed to open map session")
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to open map session")
		return
	}

	writeJSONResponse(w, http.StatusCreated, models.MapSessionResponse{SessionID: id, Snapshot: coordinator.Snapshot()})
}

// GetSession возвращает текущий снимок экрана
func (h *MapSessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id, coordinator, ok := h.lookup(w, r)
	if !ok {
		return
	}

	writeJSONResponse(w, http.StatusOK, models.MapSessionResponse{SessionID: id, Snapshot: coordinator.Snapshot()})
}

// PostEvent применяет пользовательское событие и возвращает снимок после него.
// Результат поиска приходит асинхронно и виден в следующих снимках
func (h *MapSessionHandler) PostEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id, coordinator, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req models.MapEventRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var err error
	switch req.Type {
	case models.MapEventFocus:
		err = coordinator.Focus()
	case models.MapEventBlur:
		err = coordinator.Blur()
	case models.MapEventSearch:
		if strings.TrimSpace(req.Text) == "" {
			writeErrorResponse(w, http.StatusBadRequest, "search text is required")
			return
		}
		err = coordinator.SubmitSearch(req.Text)
	case models.MapEventSearchFocus:
		err = coordinator.FocusSearch()
	case models.MapEventChooseMarker:
		if req.MarkerID == "" {
			writeErrorResponse(w, http.StatusBadRequest, "marker id is required")
			return
		}
		err = coordinator.ChooseMarker(req.MarkerID)
	case models.MapEventMapTap:
		err = coordinator.TapMap()
	case models.MapEventClearSearch:
		err = coordinator.ClearSearch()
	default:
		writeErrorResponse(w, http.StatusBadRequest, "Unknown event type")
		return
	}

	if err != nil {
		if errors.Is(err, mapscreen.ErrClosed) {
			writeErrorResponse(w, http.StatusNotFound, "Map session not found")
			return
		}
		h.log.WithError(err).WithField("session_id", id).Error("Failed to apply map event")
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to apply map event")
		return
	}

	writeJSONResponse(w, http.StatusOK, models.MapSessionResponse{SessionID: id, Snapshot: coordinator.Snapshot()})
}

// CloseSession закрывает экран карты
func (h *MapSessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id, err := extractUUIDFromPath(r.URL.Path, apiMapSessionPrefix)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	if err := h.registry.Close(id); err != nil {
		if errors.Is(err, mapscreen.ErrSessionNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "Map session not found")
			return
		}
		h.log.WithError(err).Error("Failed to close map session")
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to close map session")
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Map session closed"})
}

func (h *MapSessionHandler) lookup(w http.ResponseWriter, r *http.Request) (uuid.UUID, *mapscreen.Coordinator, bool) {
	id, err := extractUUIDFromPath(r.URL.Path, apiMapSessionPrefix)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, nil, false
	}

	coordinator, err := h.registry.Get(id)
	if err != nil {
		writeErrorResponse(w, http.StatusNotFound, "Map session not found")
		return uuid.Nil, nil, false
	}
	return id, coordinator, true
}
