package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travel-map/internal/config"
	"travel-map/internal/logger"
	"travel-map/internal/models"
	"travel-map/internal/redis"
	"travel-map/internal/redis/redis_mocks"
)

func newTestGeocoder(t *testing.T, provider, serverURL string, redisClient redis.RedisClientInterface) *GeocoderService {
	t.Helper()
	cfg := &config.GeolocationConfig{
		GeocoderProvider:     provider,
		YandexAPIKey:         "test-key",
		YandexURL:            serverURL,
		NominatimURL:         serverURL,
		RequestTimeout:       time.Second,
		GeocodeRatePerSecond: 1000,
	}
	return NewGeocoderService(cfg, redisClient, time.Hour, logger.NewTest())
}

func expectCacheMiss(m *redis_mocks.MockRedisClientInterface) {
	m.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(redis.ErrCacheMiss).Once()
	m.On("Miss").Once()
}

// TestGeocodeYandex выполняет тестирование геокодирования через Яндекс-Геокодер
func TestGeocodeYandex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "Красная Площадь", r.URL.Query().Get("geocode"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"GeoObjectCollection":{"featureMember":[{"GeoObject":{"Point":{"pos":"37.620795 55.753930"}}}]}}}`))
	}))
	defer server.Close()

	mockRedis := redis_mocks.NewMockRedisClientInterface(t)
	expectCacheMiss(mockRedis)
	mockRedis.On("Set", mock.Anything, "geocode:красная площадь", mock.Anything, time.Hour).Return(nil).Once()

	g := newTestGeocoder(t, models.GeocoderProviderYandex, server.URL, mockRedis)
	c, err := g.Geocode(context.Background(), "Красная Площадь")

	require.NoError(t, err)
	assert.InDelta(t, 55.753930, c.Latitude, 1e-9)
	assert.InDelta(t, 37.620795, c.Longitude, 1e-9)
}

// TestGeocodeNominatim выполняет тестирование геокодирования через Nominatim
func TestGeocodeNominatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Hermitage", r.URL.Query().Get("q"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[{"display_name":"Hermitage","lat":"59.9398","lon":"30.3146"}]`))
	}))
	defer server.Close()

	mockRedis := redis_mocks.NewMockRedisClientInterface(t)
	expectCacheMiss(mockRedis)
	mockRedis.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	g := newTestGeocoder(t, models.GeocoderProviderNominatim, server.URL, mockRedis)
	c, err := g.Geocode(context.Background(), "Hermitage")

	require.NoError(t, err)
	assert.Equal(t, models.Coordinate{Latitude: 59.9398, Longitude: 30.3146}, c)
}

// TestGeocodeNotFound выполняет тестирование поиска несуществующего места
func TestGeocodeNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"GeoObjectCollection":{"featureMember":[]}}}`))
	}))
	defer server.Close()

	mockRedis := redis_mocks.NewMockRedisClientInterface(t)
	expectCacheMiss(mockRedis)

	g := newTestGeocoder(t, models.GeocoderProviderYandex, server.URL, mockRedis)
	_, err := g.Geocode(context.Background(), "Unknown Place XYZ")

	assert.ErrorIs(t, err, models.ErrNotFound)
	mockRedis.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestGeocodeCacheHit выполняет тестирование ответа из кеша без обращения к провайдеру
func TestGeocodeCacheHit(t *testing.T) {
	mockRedis := redis_mocks.NewMockRedisClientInterface(t)
	cached := models.Coordinate{Latitude: 1, Longitude: 2}
	mockRedis.On("Get", mock.Anything, "geocode:cached place", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*models.GeoCache)
			*dest = models.GeoCache{Query: "cached place", Coordinate: cached}
		}).
		Return(nil).Once()
	mockRedis.On("Hit").Once()

	g := newTestGeocoder(t, models.GeocoderProviderYandex, "http://127.0.0.1:0", mockRedis)
	c, err := g.Geocode(context.Background(), " Cached PLACE ")

	require.NoError(t, err)
	assert.Equal(t, cached, c)
}

func TestGeocodeDropsInvalidCacheEntry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"display_name":"Эрмитаж","lat":"59.9398","lon":"30.3146"}]`))
	}))
	defer server.Close()

	mockRedis := redis_mocks.NewMockRedisClientInterface(t)
	mockRedis.On("Get", mock.Anything, "geocode:эрмитаж", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*models.GeoCache)
			*dest = models.GeoCache{Query: "эрмитаж", Coordinate: models.Coordinate{Latitude: 120, Longitude: 30}}
		}).
		Return(nil).Once()
	mockRedis.On("Delete", mock.Anything, "geocode:эрмитаж").Return(nil).Once()
	mockRedis.On("Miss").Once()
	mockRedis.On("Set", mock.Anything, "geocode:эрмитаж", mock.Anything, time.Hour).Return(nil).Once()

	g := newTestGeocoder(t, models.GeocoderProviderNominatim, server.URL, mockRedis)
	c, err := g.Geocode(context.Background(), "Эрмитаж")

	require.NoError(t, err)
	assert.InDelta(t, 59.9398, c.Latitude, 1e-9)
}

// TestGeocodeProviderError выполняет тестирование ошибки провайдера
func TestGeocodeProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	mockRedis := redis_mocks.NewMockRedisClientInterface(t)
	expectCacheMiss(mockRedis)

	g := newTestGeocoder(t, models.GeocoderProviderYandex, server.URL, mockRedis)
	_, err := g.Geocode(context.Background(), "somewhere")

	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrNotFound)
}

func TestGeocodeEmptyQuery(t *testing.T) {
	g := newTestGeocoder(t, models.GeocoderProviderYandex, "http://127.0.0.1:0", redis_mocks.NewMockRedisClientInterface(t))
	_, err := g.Geocode(context.Background(), "   ")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
