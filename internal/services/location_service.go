package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"travel-map/internal/logger"
	"travel-map/internal/models"

	"github.com/goccy/go-json"
)

type deviceFix struct {
	coordinate models.Coordinate
	granted    bool
	receivedAt time.Time
}

/*
LocationService хранит последнюю известную точку каждого устройства.
Точки приходят событиями location.updated из Kafka. Устройство, которое не дало разрешения
на геолокацию или ещё ничего не присылало, получает ErrPermissionDenied.
*/
type LocationService struct {
	log *logger.Logger

	mu    sync.RWMutex
	fixes map[string]deviceFix
}

// NewLocationService создаёт экземпляр LocationService
func NewLocationService(log *logger.Logger) *LocationService {
	return &LocationService{
		log:   log,
		fixes: make(map[string]deviceFix),
	}
}

// HandleLocationUpdated - обработчик события location.updated
func (s *LocationService) HandleLocationUpdated(ctx context.Context, event *models.Event) error {
	var data models.LocationUpdatedData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("failed to unmarshal location data: %w", err)
	}
	if data.DeviceID == "" {
		return fmt.Errorf("location event %s has no device id", event.ID)
	}

	c := models.Coordinate{Latitude: data.Latitude, Longitude: data.Longitude}
	if data.PermissionGranted && !c.Valid() {
		return fmt.Errorf("device %s: %w", data.DeviceID, models.ErrInvalidCoordinates)
	}

	s.Update(data.DeviceID, c, data.PermissionGranted)
	return nil
}

// Update сохраняет точку устройства
func (s *LocationService) Update(deviceID string, c models.Coordinate, granted bool) {
	s.mu.Lock()
	s.fixes[deviceID] = deviceFix{coordinate: c, granted: granted, receivedAt: time.Now()}
	s.mu.Unlock()

	s.log.WithFields(map[string]interface{}{
		"device_id": deviceID,
		"granted":   granted,
	}).Debug("Device location updated")
}

// Locate возвращает последнюю точку устройства
func (s *LocationService) Locate(ctx context.Context, deviceID string) (models.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinate{}, err
	}

	s.mu.RLock()
	fix, ok := s.fixes[deviceID]
	s.mu.RUnlock()

	if !ok || !fix.granted {
		return models.Coordinate{}, models.ErrPermissionDenied
	}
	return fix.coordinate, nil
}

// For возвращает Locator, привязанный к одному устройству
func (s *LocationService) For(deviceID string) *DeviceLocator {
	return &DeviceLocator{service: s, deviceID: deviceID}
}

// DeviceLocator - местоположение одного устройства
type DeviceLocator struct {
	service  *LocationService
	deviceID string
}

func (l *DeviceLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	return l.service.Locate(ctx, l.deviceID)
}
