package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travel-map/internal/config"
	"travel-map/internal/logger"
	"travel-map/internal/models"
	"travel-map/internal/redis"
	"travel-map/internal/redis/redis_mocks"
)

func newTestDirections(serverURL string, redisClient redis.RedisClientInterface) *DirectionsService {
	cfg := &config.GeolocationConfig{
		OpenrouteAPIKey: "ors-key",
		OpenrouteURL:    serverURL,
		RequestTimeout:  time.Second,
	}
	return NewDirectionsService(cfg, redisClient, time.Hour, logger.NewTest())
}

var walkingRequest = models.DirectionsRequest{
	Origin:      models.Coordinate{Latitude: 55.75, Longitude: 37.61},
	Waypoints:   []models.Coordinate{{Latitude: 55.76, Longitude: 37.62}},
	Destination: models.Coordinate{Latitude: 55.77, Longitude: 37.63},
	Mode:        models.TravelModeWalking,
}

// TestDirectionsSuccess выполняет тестирование построения пешего маршрута
func TestDirectionsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ors-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var req models.OpenrouteRequest
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, [][2]float64{{37.61, 55.75}, {37.62, 55.76}, {37.63, 55.77}}, req.Coordinates)

		_, _ = w.Write([]byte(`{"routes":[{"summary":{"distance":2500.5,"duration":1800},"geometry":"_p~iF~ps|U_ulLnnqC_mqNvxq` + "`" + `@"}]}`))
	}))
	defer server.Close()

	mockRedis := redis_mocks.NewMockRedisClientInterface(t)
	mockRedis.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(redis.ErrCacheMiss).Once()
	mockRedis.On("Miss").Once()
	mockRedis.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Hour).Return(nil).Once()

	path, err := newTestDirections(server.URL, mockRedis).Directions(context.Background(), walkingRequest)

	require.NoError(t, err)
	assert.Equal(t, 2500.5, path.Distance)
	assert.Equal(t, 1800.0, path.Duration)
	require.Len(t, path.Points, 3)
	assert.InDelta(t, 38.5, path.Points[0].Latitude, 1e-9)
	assert.InDelta(t, -126.453, path.Points[2].Longitude, 1e-9)
}

// TestDirectionsNoRoute выполняет тестирование ответа "маршрут не найден"
func TestDirectionsNoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":2010,"message":"Could not find routable point"}}`))
	}))
	defer server.Close()

	mockRedis := redis_mocks.NewMockRedisClientInterface(t)
	mockRedis.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(redis.ErrCacheMiss).Once()
	mockRedis.On("Miss").Once()

	_, err := newTestDirections(server.URL, mockRedis).Directions(context.Background(), walkingRequest)
	assert.ErrorIs(t, err, models.ErrNoRoute)
}

// TestDirectionsRejectsBadRequests выполняет тестирование валидации запроса до обращения к провайдеру
func TestDirectionsRejectsBadRequests(t *testing.T) {
	d := newTestDirections("http://127.0.0.1:0", redis_mocks.NewMockRedisClientInterface(t))

	driving := walkingRequest
	driving.Mode = "DRIVING"
	_, err := d.Directions(context.Background(), driving)
	assert.Error(t, err)

	invalid := walkingRequest
	invalid.Destination = models.Coordinate{Latitude: 120, Longitude: 0}
	_, err = d.Directions(context.Background(), invalid)
	assert.ErrorIs(t, err, models.ErrInvalidCoordinates)
}

func TestIsNoRouteResponse(t *testing.T) {
	assert.True(t, isNoRouteResponse(http.StatusNotFound, nil))
	assert.True(t, isNoRouteResponse(http.StatusBadRequest, []byte(`{"error":{"code":2009}}`)))
	assert.False(t, isNoRouteResponse(http.StatusBadRequest, []byte(`{"error":{"code":2003}}`)))
	assert.False(t, isNoRouteResponse(http.StatusInternalServerError, []byte(`oops`)))
}

func TestDecodePolyline(t *testing.T) {
	points := decodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	expected := []models.Coordinate{
		{Latitude: 38.5, Longitude: -120.2},
		{Latitude: 40.7, Longitude: -120.95},
		{Latitude: 43.252, Longitude: -126.453},
	}
	require.Len(t, points, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i].Latitude, points[i].Latitude, 1e-9)
		assert.InDelta(t, expected[i].Longitude, points[i].Longitude, 1e-9)
	}
	assert.Nil(t, decodePolyline(""))
}

// TestDecodePolylineDropsBrokenTail выполняет тестирование обрезанной и повреждённой геометрии
func TestDecodePolylineDropsBrokenTail(t *testing.T) {
	first := models.Coordinate{Latitude: 38.5, Longitude: -120.2}

	for name, encoded := range map[string]string{
		"unpaired latitude":   "_p~iF~ps|U_ulL",
		"truncated value":     "_p~iF~ps|U_u",
		"longitude truncated": "_p~iF~ps|U_ulLn",
	} {
		t.Run(name, func(t *testing.T) {
			points := decodePolyline(encoded)
			require.Len(t, points, 1)
			assert.InDelta(t, first.Latitude, points[0].Latitude, 1e-9)
			assert.InDelta(t, first.Longitude, points[0].Longitude, 1e-9)
		})
	}

	assert.Empty(t, decodePolyline("~~~~~~~~~~?"))
	assert.Empty(t, decodePolyline("_p~iF"))
}

func TestDirectionsCacheKeyStable(t *testing.T) {
	a := directionsCacheKey([][2]float64{{1, 2}, {3, 4}})
	b := directionsCacheKey([][2]float64{{1.0000001, 2}, {3, 4}})
	c := directionsCacheKey([][2]float64{{3, 4}, {1, 2}})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
