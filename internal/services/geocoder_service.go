package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"travel-map/internal/config"
	"travel-map/internal/logger"
	"travel-map/internal/metrics"
	"travel-map/internal/models"
	"travel-map/internal/redis"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

/*
GeocoderService - сервис геокодирования произвольного текста.
GeocoderService.provider - yandex (Яндекс-Геокодер) или nominatim (OpenStreetMap)
GeocoderService.limiter - ограничение частоты запросов к провайдеру
GeocoderService.redisClient - кеш уже найденных адресов
*/
type GeocoderService struct {
	provider     string
	yandexKey    string
	yandexURL    string
	nominatimURL string
	client       *http.Client
	limiter      *rate.Limiter
	breaker      *gobreaker.CircuitBreaker[models.Coordinate]
	redisClient  redis.RedisClientInterface
	cacheTTL     time.Duration
	log          *logger.Logger
}

// NewGeocoderService создаёт новый экземпляр геокодера
func NewGeocoderService(cfg *config.GeolocationConfig, redisClient redis.RedisClientInterface, cacheTTL time.Duration, log *logger.Logger) *GeocoderService {
	return &GeocoderService{
		provider:     cfg.GeocoderProvider,
		yandexKey:    cfg.YandexAPIKey,
		yandexURL:    cfg.YandexURL,
		nominatimURL: cfg.NominatimURL,
		client:       &http.Client{Timeout: cfg.RequestTimeout},
		limiter:      rate.NewLimiter(rate.Limit(cfg.GeocodeRatePerSecond), 1),
		breaker:      newBreaker[models.Coordinate]("geocoder-"+cfg.GeocoderProvider, log),
		redisClient:  redisClient,
		cacheTTL:     cacheTTL,
		log:          log,
	}
}

// Geocode возвращает координату места, найденного по тексту. Если ничего не найдено - models.ErrNotFound
func (g *GeocoderService) Geocode(ctx context.Context, query string) (models.Coordinate, error) {
	normalized := normalizeQuery(query)
	if normalized == "" {
		return models.Coordinate{}, models.ErrNotFound
	}

	// Попытка получить из кеша
	cacheKey := redis.GenerateKey(redis.KeyPrefixGeocode, normalized)
	var cached models.GeoCache
	if err := g.redisClient.Get(ctx, cacheKey, &cached); err == nil {
		if cached.Coordinate.Valid() {
			g.redisClient.Hit()
			return cached.Coordinate, nil
		}
		// Испорченная запись не должна отдаваться повторно
		if err := g.redisClient.Delete(ctx, cacheKey); err != nil {
			g.log.WithError(err).WithField("key", cacheKey).Warn("Failed to drop invalid cache entry")
		}
	}
	g.redisClient.Miss()

	if err := g.limiter.Wait(ctx); err != nil {
		return models.Coordinate{}, err
	}

	start := time.Now()
	coordinate, err := g.breaker.Execute(func() (models.Coordinate, error) {
		if g.provider == models.GeocoderProviderNominatim {
			return g.searchNominatim(ctx, query)
		}
		return g.searchYandex(ctx, query)
	})
	metrics.ExternalRequestDuration.WithLabelValues("geocoder").Observe(time.Since(start).Seconds())
	metrics.ExternalRequests.WithLabelValues("geocoder", outcome(err)).Inc()
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			g.log.WithError(err).WithField("query", query).Error("Geocoding failed")
		}
		return models.Coordinate{}, err
	}

	entry := models.GeoCache{Query: normalized, Coordinate: coordinate}
	if err := g.redisClient.Set(ctx, cacheKey, entry, g.cacheTTL); err != nil {
		g.log.WithError(err).Error("Failed to cache geocoding result")
	}

	return coordinate, nil
}

// searchYandex запрашивает Яндекс-Геокодер. Координаты приходят строкой "lng lat"
func (g *GeocoderService) searchYandex(ctx context.Context, query string) (models.Coordinate, error) {
	params := url.Values{}
	params.Add("apikey", g.yandexKey)
	params.Add("geocode", query)
	params.Add("results", "1")
	params.Add("format", "json")

	var apiResponse models.YandexResponse
	if err := g.getJSON(ctx, g.yandexURL, params, &apiResponse); err != nil {
		return models.Coordinate{}, err
	}

	featureMember := apiResponse.Response.GeoObjectCollection.FeatureMember
	if len(featureMember) == 0 {
		g.log.WithField("query", query).Warn("No objects in response body")
		return models.Coordinate{}, models.ErrNotFound
	}

	pos := featureMember[0].GeoObject.Point.Pos
	var lng, lat float64
	if _, err := fmt.Sscanf(pos, "%f %f", &lng, &lat); err != nil {
		return models.Coordinate{}, fmt.Errorf("failed to parse coordinates: %w", err)
	}

	c := models.Coordinate{Latitude: lat, Longitude: lng}
	if !c.Valid() {
		return models.Coordinate{}, models.ErrInvalidCoordinates
	}
	return c, nil
}

// searchNominatim запрашивает поиск OpenStreetMap
func (g *GeocoderService) searchNominatim(ctx context.Context, query string) (models.Coordinate, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("limit", "1")

	var results []models.NominatimResponse
	if err := g.getJSON(ctx, g.nominatimURL, params, &results); err != nil {
		return models.Coordinate{}, err
	}
	if len(results) == 0 {
		return models.Coordinate{}, models.ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	c := models.Coordinate{Latitude: lat, Longitude: lng}
	if !c.Valid() {
		return models.Coordinate{}, models.ErrInvalidCoordinates
	}
	return c, nil
}

func (g *GeocoderService) getJSON(ctx context.Context, baseURL string, params url.Values, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "TravelMap/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.log.WithFields(map[string]interface{}{
			"status_code": resp.StatusCode,
			"respBody":    string(body),
		}).Error("Bad response from geocoder")
		return fmt.Errorf("bad response with status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	return nil
}

// normalizeQuery приводит текст к виду, который используется как ключ кеша
func normalizeQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}
