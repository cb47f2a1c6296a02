package models

import "github.com/google/uuid"

// Типы событий экрана карты, принимаемые по HTTP
const (
	MapEventFocus        = "focus"
	MapEventBlur         = "blur"
	MapEventSearch       = "search"
	MapEventSearchFocus  = "search_focus"
	MapEventChooseMarker = "choose_marker"
	MapEventMapTap       = "map_tap"
	MapEventClearSearch  = "clear_search"
)

// OpenMapSessionRequest - тело запроса на открытие экрана карты
type OpenMapSessionRequest struct {
	DeviceID string `json:"device_id"`
}

// MapEventRequest - пользовательское событие экрана карты.
// Text нужен для search, MarkerID - для choose_marker
type MapEventRequest struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	MarkerID string `json:"marker_id,omitempty"`
}

// MapSessionResponse - ответ с текущим снимком экрана
type MapSessionResponse struct {
	SessionID uuid.UUID      `json:"session_id"`
	Snapshot  RenderSnapshot `json:"snapshot"`
}
