package handler_tests

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"travel-map/internal/models"

	"github.com/google/uuid"
)

// Обычные переменные
var markerID = uuid.New()
var createdAt = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

// Экземпляры моделей приложения
// // Маркеры
var markerRequest = models.MarkerRequest{
	Title:      "Эрмитаж",
	Coordinate: models.RawCoordinate{Latitude: 59.9398, Longitude: 30.3146},
	Color:      "#FF5722",
	Route:      "museums",
}

var marker1 = &models.MarkerRecord{
	ID:         markerID.String(),
	Title:      markerRequest.Title,
	Coordinate: &models.RawCoordinate{Latitude: 59.9398, Longitude: 30.3146},
	Color:      markerRequest.Color,
	Route:      markerRequest.Route,
	CreatedAt:  createdAt,
}

var marker2 = models.MarkerRecord{
	ID:         uuid.New().String(),
	Title:      "Русский музей",
	Coordinate: &models.RawCoordinate{Latitude: 59.9387, Longitude: 30.3323},
	Route:      "museums",
	CreatedAt:  createdAt,
}

// // Метрики
var kafkaMetrics = &models.EventStatisticsResponse{
	TotalLag: 123,
	Statistics: []models.TopicStatistics{
		{Topic: "map.locations", TotalProcessedEvents: 1000, Errors: 20, AvgProcessingDuration: "10 ms"},
		{Topic: "map.markers", TotalProcessedEvents: 1500, Errors: 100, AvgProcessingDuration: "20 ms"},
	},
	MapSessions:           3,
	StaleResponsesDropped: 7,
}
var redisMetrics = &models.CacheMetricsResponse{
	Hits:      950,
	Misses:    50,
	HitRate:   95.0,
	MissRate:  5.0,
	CacheSize: 1000,
}

// // Маршруты
var directionsRequest = models.DirectionsRequest{
	Origin:      models.Coordinate{Latitude: 59.9398, Longitude: 30.3146},
	Waypoints:   []models.Coordinate{},
	Destination: models.Coordinate{Latitude: 59.9387, Longitude: 30.3323},
	Mode:        models.TravelModeWalking,
}
var walkingPath = &models.Path{
	Distance: 1250,
	Duration: 900,
	Points:   []models.Coordinate{directionsRequest.Origin, directionsRequest.Destination},
}

// Ошибки
var errorInternalServerError = errors.New("internal Server Error")

// Тесткейсы для GET /api/markers/{id}
var getMarkerTestCases = []struct {
	name               string
	id                 uuid.UUID
	returnedValue      *models.MarkerRecord
	returnedError      error
	expectedStatusCode int
}{
	{"test_ok", markerID, marker1, nil, http.StatusOK},
	{"test_not_found", uuid.New(), nil, models.ErrMarkerNotFound, http.StatusNotFound},
	{"test_server_error", uuid.New(), nil, errorInternalServerError, http.StatusInternalServerError},
}

// Тесткейсы для POST /api/markers
var createMarkerTestCases = []struct {
	name               string
	payload            interface{}
	returnedValue      *models.MarkerRecord
	returnedError      error
	expectedStatusCode int
}{
	{"test_created", markerRequest, marker1, nil, http.StatusCreated},
	{"test_server_error", markerRequest, nil, errorInternalServerError, http.StatusInternalServerError},
	{"test_bad_body", "not an object", nil, nil, http.StatusBadRequest},
	{
		"validate_title",
		models.MarkerRequest{Coordinate: markerRequest.Coordinate},
		nil, nil, http.StatusBadRequest,
	},
	{
		"validate_title_length",
		models.MarkerRequest{Title: strings.Repeat("я", 256), Coordinate: markerRequest.Coordinate},
		nil, nil, http.StatusBadRequest,
	},
	{
		"validate_coordinate_not_numeric",
		models.MarkerRequest{Title: "bad", Coordinate: models.RawCoordinate{Latitude: "abc", Longitude: 1.0}},
		nil, nil, http.StatusBadRequest,
	},
	{
		"validate_coordinate_range",
		models.MarkerRequest{Title: "bad", Coordinate: models.RawCoordinate{Latitude: 91.0, Longitude: 1.0}},
		nil, nil, http.StatusBadRequest,
	},
	{
		"validate_coordinate_missing",
		models.MarkerRequest{Title: "bad"},
		nil, nil, http.StatusBadRequest,
	},
	{
		"validate_color",
		models.MarkerRequest{Title: "bad", Coordinate: markerRequest.Coordinate, Color: "red"},
		nil, nil, http.StatusBadRequest,
	},
	{
		"validate_reserved_route",
		models.MarkerRequest{Title: "bad", Coordinate: markerRequest.Coordinate, Route: models.NoRouteKey},
		nil, nil, http.StatusBadRequest,
	},
}

// Тесткейсы для PUT /api/markers/{id}
var replaceMarkerTestCases = []struct {
	name               string
	id                 uuid.UUID
	returnedValue      *models.MarkerRecord
	returnedError      error
	expectedStatusCode int
}{
	{"test_ok", markerID, marker1, nil, http.StatusOK},
	{"test_not_found", uuid.New(), nil, models.ErrMarkerNotFound, http.StatusNotFound},
	{"test_server_error", uuid.New(), nil, errorInternalServerError, http.StatusInternalServerError},
}

// Тесткейсы для DELETE /api/markers/{id}
var deleteMarkerTestCases = []struct {
	name               string
	id                 uuid.UUID
	returnedError      error
	expectedStatusCode int
}{
	{"test_ok", markerID, nil, http.StatusOK},
	{"test_not_found", uuid.New(), models.ErrMarkerNotFound, http.StatusNotFound},
	{"test_server_error", uuid.New(), errorInternalServerError, http.StatusInternalServerError},
}

// Тесткейсы для POST /api/directions
var getDirectionsTestCases = []struct {
	name               string
	payload            interface{}
	callsService       bool
	returnedValue      *models.Path
	returnedError      error
	expectedStatusCode int
}{
	{"test_ok", directionsRequest, true, walkingPath, nil, http.StatusOK},
	{"test_no_route", directionsRequest, true, nil, models.ErrNoRoute, http.StatusNotFound},
	{"test_server_error", directionsRequest, true, nil, errorInternalServerError, http.StatusInternalServerError},
	{"test_bad_body", "oops", false, nil, nil, http.StatusBadRequest},
	{
		"validate_mode",
		models.DirectionsRequest{Origin: directionsRequest.Origin, Destination: directionsRequest.Destination, Mode: "DRIVING"},
		false, nil, nil, http.StatusBadRequest,
	},
	{
		"validate_coordinates",
		models.DirectionsRequest{Origin: directionsRequest.Origin, Destination: models.Coordinate{Latitude: 100}},
		false, nil, nil, http.StatusBadRequest,
	},
}

// Тесткейсы для статистики Redis
var getRedisMetricsTestCases = []struct {
	name               string
	context            context.Context
	returnedValue      *models.CacheMetricsResponse
	returnedError      error
	expectedStatusCode int
}{
	{"test_ok", context.Background(), redisMetrics, nil, http.StatusOK},
	{"test_server_error", context.Background(), nil, errorInternalServerError, http.StatusInternalServerError},
}

// Тесткейсы для extractUUIDFromPath
var extractUUIDFromPathTestCases = []struct {
	name     string
	path     string
	prefix   string
	hasError bool
}{
	{"test_ok", fmt.Sprintf("/api/map/sessions/%s/events", uuid.New().String()), "/api/map/sessions/", false},
	{"test_ok_no_suffix", fmt.Sprintf("/api/markers/%s", uuid.New().String()), "/api/markers/", false},
	{"test_invalid_path", "/test/case", "/api/", true},
	{"test_missing_uuid", "/api/markers/", "/api/markers/", true},
	{"test_invalid_uuid", fmt.Sprintf("/api/markers/%d", 1234), "/api/markers/", true},
}
