package handler_tests

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"travel-map/internal/handlers"
	"travel-map/internal/logger"
	"travel-map/internal/mapscreen"
	"travel-map/internal/models"
)

// setupTestMarkerRoutes настраивает HTTP-маршруты для функционала маркеров
func setupTestMarkerRoutes(h *handlers.MarkerHandler) *http.ServeMux {
	return handlers.NewMux(handlers.Router{Markers: h})
}

// setupTestMapSessionRoutes настраивает HTTP-маршруты для экранов карты
func setupTestMapSessionRoutes(h *handlers.MapSessionHandler) *http.ServeMux {
	return handlers.NewMux(handlers.Router{MapSessions: h})
}

// setupTestDirectionsRoute настраивает HTTP-маршрут построения маршрута
func setupTestDirectionsRoute(h *handlers.DirectionsHandler) *http.ServeMux {
	return handlers.NewMux(handlers.Router{Directions: h})
}

// setupTestKafkaMetricsRoute настраивает HTTP-маршрут для функционала получения статистики Kafka
func setupTestKafkaMetricsRoute(h *handlers.KafkaMetricsHandler) *http.ServeMux {
	return handlers.NewMux(handlers.Router{KafkaMetrics: h})
}

// setupTestRedisMetricsRoute настраивает HTTP-маршрут для функционала получения статистики Redis
func setupTestRedisMetricsRoute(h *handlers.RedisMetricsHandler) *http.ServeMux {
	return handlers.NewMux(handlers.Router{RedisMetrics: h})
}

type stubLocator struct {
	location models.Coordinate
}

func (s stubLocator) Locate(context.Context) (models.Coordinate, error) { return s.location, nil }

type stubMarkers struct {
	records []models.MarkerRecord
}

func (s stubMarkers) Refresh(context.Context) ([]models.MarkerRecord, error) { return s.records, nil }

// stubGeocoder знает только места из своей таблицы
type stubGeocoder struct {
	mu     sync.Mutex
	places map[string]models.Coordinate
}

func (s *stubGeocoder) Geocode(_ context.Context, query string) (models.Coordinate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.places[query]; ok {
		return c, nil
	}
	return models.Coordinate{}, models.ErrNotFound
}

var deviceLocation = models.Coordinate{Latitude: 59.9343, Longitude: 30.3351}

// setupTestRegistry создаёт Registry с заглушками внешних источников
func setupTestRegistry(t *testing.T) *mapscreen.Registry {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	geocoder := &stubGeocoder{places: map[string]models.Coordinate{
		"Эрмитаж": {Latitude: 59.9398, Longitude: 30.3146},
	}}
	registry := mapscreen.NewRegistry(ctx,
		func(string) mapscreen.Locator { return stubLocator{location: deviceLocation} },
		stubMarkers{records: []models.MarkerRecord{*marker1, marker2}},
		geocoder,
		logger.NewTest(),
	)
	t.Cleanup(func() {
		registry.CloseAll()
		cancel()
	})
	return registry
}
