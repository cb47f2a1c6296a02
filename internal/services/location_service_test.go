package services

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-map/internal/logger"
	"travel-map/internal/models"
)

func locationEvent(t *testing.T, data models.LocationUpdatedData) *models.Event {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return &models.Event{ID: uuid.New(), Type: models.EventTypeLocationUpdated, Timestamp: time.Now(), Data: raw}
}

// TestLocationServiceHandleEvent выполняет тестирование обработки события location.updated
func TestLocationServiceHandleEvent(t *testing.T) {
	s := NewLocationService(logger.NewTest())
	ctx := context.Background()

	_, err := s.Locate(ctx, "device-1")
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	require.NoError(t, s.HandleLocationUpdated(ctx, locationEvent(t, models.LocationUpdatedData{
		DeviceID: "device-1", Latitude: 55.75, Longitude: 37.61, PermissionGranted: true,
	})))

	c, err := s.For("device-1").Locate(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Coordinate{Latitude: 55.75, Longitude: 37.61}, c)

	// Устройство отозвало разрешение
	require.NoError(t, s.HandleLocationUpdated(ctx, locationEvent(t, models.LocationUpdatedData{DeviceID: "device-1"})))
	_, err = s.Locate(ctx, "device-1")
	assert.ErrorIs(t, err, models.ErrPermissionDenied)
}

// TestLocationServiceRejectsBadEvents выполняет тестирование некорректных событий
func TestLocationServiceRejectsBadEvents(t *testing.T) {
	s := NewLocationService(logger.NewTest())
	ctx := context.Background()

	err := s.HandleLocationUpdated(ctx, locationEvent(t, models.LocationUpdatedData{Latitude: 1, Longitude: 1, PermissionGranted: true}))
	assert.Error(t, err)

	err = s.HandleLocationUpdated(ctx, locationEvent(t, models.LocationUpdatedData{
		DeviceID: "device-1", Latitude: 91, Longitude: 0, PermissionGranted: true,
	}))
	assert.ErrorIs(t, err, models.ErrInvalidCoordinates)

	err = s.HandleLocationUpdated(ctx, &models.Event{ID: uuid.New(), Data: []byte(`"oops"`)})
	assert.Error(t, err)
}

func TestLocationServiceCanceledContext(t *testing.T) {
	s := NewLocationService(logger.NewTest())
	s.Update("device-1", models.Coordinate{Latitude: 1, Longitude: 1}, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Locate(ctx, "device-1")
	assert.ErrorIs(t, err, context.Canceled)
}
