package models

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// EventType - тип события в Kafka
type EventType string

const (
	EventTypeLocationUpdated EventType = "location.updated"
	EventTypeMarkerChanged   EventType = "marker.changed"
)

// Event - конверт события
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// LocationUpdatedData - очередная точка от устройства пользователя
type LocationUpdatedData struct {
	DeviceID          string  `json:"device_id"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	PermissionGranted bool    `json:"permission_granted"`
}

// MarkerChangedData - маркер был создан, заменён или удалён в админке
type MarkerChangedData struct {
	MarkerID string `json:"marker_id"`
	Action   string `json:"action"`
}
