package services

import (
	"context"

	"travel-map/internal/models"

	"github.com/google/uuid"
)

type GeocoderInterface interface {
	Geocode(ctx context.Context, query string) (models.Coordinate, error)
}

type DirectionsServiceInterface interface {
	Directions(ctx context.Context, req models.DirectionsRequest) (*models.Path, error)
}

type MarkerServiceInterface interface {
	ListMarkers(ctx context.Context, search string) ([]models.MarkerRecord, error)
	GetMarker(ctx context.Context, id uuid.UUID) (*models.MarkerRecord, error)
	CreateMarker(ctx context.Context, req *models.MarkerRequest) (*models.MarkerRecord, error)
	ReplaceMarker(ctx context.Context, id uuid.UUID, req *models.MarkerRequest) (*models.MarkerRecord, error)
	DeleteMarker(ctx context.Context, id uuid.UUID) error
	FetchMarkers(ctx context.Context) ([]models.MarkerRecord, error)
}

type KafkaMetricsServiceInterface interface {
	GetStatistics() *models.EventStatisticsResponse
}

type RedisServiceInterface interface {
	GetStatistics(ctx context.Context) (*models.CacheMetricsResponse, error)
}
