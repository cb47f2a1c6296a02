package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"travel-map/internal/logger"
	"travel-map/internal/models"
)

// MarkerFetcher - внешний источник снимка маркеров
type MarkerFetcher interface {
	FetchMarkers(ctx context.Context) ([]models.MarkerRecord, error)
}

/*
MarkerStore - снимок маркеров, обновляемый по запросу.
Если обновление не удалось, store продолжает отдавать последний удачный снимок.
*/
type MarkerStore struct {
	fetcher MarkerFetcher
	log     *logger.Logger

	mu          sync.RWMutex
	snapshot    []models.MarkerRecord
	refreshedAt time.Time
}

// NewMarkerStore создаёт пустой MarkerStore
func NewMarkerStore(fetcher MarkerFetcher, log *logger.Logger) *MarkerStore {
	return &MarkerStore{fetcher: fetcher, log: log}
}

// Refresh запрашивает свежий снимок. При ошибке возвращает последний удачный снимок вместе с ошибкой
func (s *MarkerStore) Refresh(ctx context.Context) ([]models.MarkerRecord, error) {
	records, err := s.fetcher.FetchMarkers(ctx)
	if err != nil {
		s.log.WithError(err).Warn("Failed to refresh markers, keeping last snapshot")
		return s.Snapshot(), fmt.Errorf("failed to refresh markers: %w", err)
	}

	snapshot := make([]models.MarkerRecord, len(records))
	copy(snapshot, records)

	s.mu.Lock()
	s.snapshot = snapshot
	s.refreshedAt = time.Now()
	s.mu.Unlock()

	s.log.WithField("count", len(snapshot)).Debug("Marker snapshot refreshed")
	return s.Snapshot(), nil
}

// Snapshot возвращает копию текущего снимка
func (s *MarkerStore) Snapshot() []models.MarkerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MarkerRecord, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// RefreshedAt возвращает время последнего удачного обновления
func (s *MarkerStore) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

// HandleMarkerChanged - обработчик события marker.changed: прогревает снимок после правок в админке
func (s *MarkerStore) HandleMarkerChanged(ctx context.Context, event *models.Event) error {
	_, err := s.Refresh(ctx)
	return err
}
