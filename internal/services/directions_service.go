package services

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"travel-map/internal/config"
	"travel-map/internal/logger"
	"travel-map/internal/metrics"
	"travel-map/internal/models"
	"travel-map/internal/redis"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Коды ошибок OpenrouteService, означающие, что маршрута между точками нет
const (
	openrouteRouteNotFound    = 2009
	openrouteNoRoutablePoint  = 2010
	openrouteMaxDistanceError = 2004
)

/*
DirectionsService - сервис построения пеших маршрутов через OpenrouteService.
DirectionsService.openrouteKey - API-ключ OpenrouteService
*/
type DirectionsService struct {
	openrouteKey string
	openrouteURL string
	client       *http.Client
	breaker      *gobreaker.CircuitBreaker[*models.Path]
	redisClient  redis.RedisClientInterface
	cacheTTL     time.Duration
	log          *logger.Logger
}

// NewDirectionsService создаёт новый экземпляр сервиса маршрутов
func NewDirectionsService(cfg *config.GeolocationConfig, redisClient redis.RedisClientInterface, cacheTTL time.Duration, log *logger.Logger) *DirectionsService {
	return &DirectionsService{
		openrouteKey: cfg.OpenrouteAPIKey,
		openrouteURL: cfg.OpenrouteURL,
		client:       &http.Client{Timeout: cfg.RequestTimeout},
		breaker:      newBreaker[*models.Path]("openroute", log),
		redisClient:  redisClient,
		cacheTTL:     cacheTTL,
		log:          log,
	}
}

// Directions строит пеший маршрут по точкам запроса. Если маршрута нет - models.ErrNoRoute
func (d *DirectionsService) Directions(ctx context.Context, req models.DirectionsRequest) (*models.Path, error) {
	if req.Mode != "" && req.Mode != models.TravelModeWalking {
		return nil, fmt.Errorf("unsupported travel mode %q", req.Mode)
	}

	points := req.Points()
	coordinates := make([][2]float64, 0, len(points))
	for _, p := range points {
		if !p.Valid() {
			return nil, models.ErrInvalidCoordinates
		}
		coordinates = append(coordinates, p.LngLat())
	}

	cacheKey := redis.GenerateKey(redis.KeyPrefixDirections, directionsCacheKey(coordinates))
	var cached models.Path
	if err := d.redisClient.Get(ctx, cacheKey, &cached); err == nil {
		d.redisClient.Hit()
		return &cached, nil
	}
	d.redisClient.Miss()

	start := time.Now()
	path, err := d.breaker.Execute(func() (*models.Path, error) {
		return d.makeRoute(ctx, coordinates)
	})
	metrics.ExternalRequestDuration.WithLabelValues("directions").Observe(time.Since(start).Seconds())
	metrics.ExternalRequests.WithLabelValues("directions", outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	if err := d.redisClient.Set(ctx, cacheKey, path, d.cacheTTL); err != nil {
		d.log.WithError(err).Error("Failed to cache route")
	}
	return path, nil
}

// makeRoute отправляет координаты (lng, lat) в OpenrouteService
func (d *DirectionsService) makeRoute(ctx context.Context, coordinates [][2]float64) (*models.Path, error) {
	requestBody := models.OpenrouteRequest{
		Coordinates:  coordinates,
		Instructions: false,
		Geometry:     true,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.openrouteURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", d.openrouteKey)

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.WithError(err).Error("Failed to send request")
		return nil, fmt.Errorf("openroute request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if isNoRouteResponse(resp.StatusCode, data) {
			return nil, models.ErrNoRoute
		}
		d.log.WithFields(map[string]interface{}{
			"status_code": resp.StatusCode,
			"respBody":    string(data),
		}).Error("Bad response from Openroute API")
		return nil, fmt.Errorf("bad response with status code %d", resp.StatusCode)
	}

	var apiResponse models.OpenrouteResponse
	if err := json.Unmarshal(data, &apiResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Openroute API response: %w", err)
	}
	if len(apiResponse.Routes) == 0 {
		return nil, models.ErrNoRoute
	}

	route := apiResponse.Routes[0]
	return &models.Path{
		Distance: route.Summary.Distance,
		Duration: route.Summary.Duration,
		Points:   decodePolyline(route.Geometry),
	}, nil
}

func isNoRouteResponse(status int, body []byte) bool {
	if status == http.StatusNotFound {
		return true
	}
	var payload struct {
		Error struct {
			Code int `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return false
	}
	switch payload.Error.Code {
	case openrouteRouteNotFound, openrouteNoRoutablePoint, openrouteMaxDistanceError:
		return true
	}
	return false
}

// directionsCacheKey - хеш координат с точностью до шестого знака
func directionsCacheKey(coordinates [][2]float64) string {
	h := sha1.New()
	for _, c := range coordinates {
		fmt.Fprintf(h, "%.6f,%.6f;", c[0], c[1])
	}
	return hex.EncodeToString(h.Sum(nil))
}
