package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travel-map/internal/logger"
	"travel-map/internal/models"
	"travel-map/internal/services/services_mocks"
)

func storeRecord(id string) models.MarkerRecord {
	return models.MarkerRecord{
		ID:         id,
		Title:      id,
		Coordinate: &models.RawCoordinate{Latitude: 1.0, Longitude: 2.0},
	}
}

// TestMarkerStoreKeepsLastGoodSnapshot выполняет тестирование сохранения снимка при ошибке загрузки
func TestMarkerStoreKeepsLastGoodSnapshot(t *testing.T) {
	fetcher := services_mocks.NewMockMarkerServiceInterface(t)
	fetcher.On("FetchMarkers", mock.Anything).Return([]models.MarkerRecord{storeRecord("a"), storeRecord("b")}, nil).Once()
	fetcher.On("FetchMarkers", mock.Anything).Return(nil, errors.New("db is down")).Once()

	store := NewMarkerStore(fetcher, logger.NewTest())
	assert.Empty(t, store.Snapshot())
	assert.True(t, store.RefreshedAt().IsZero())

	records, err := store.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	refreshedAt := store.RefreshedAt()
	assert.False(t, refreshedAt.IsZero())

	records, err = store.Refresh(context.Background())
	require.Error(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, refreshedAt, store.RefreshedAt())
}

// TestMarkerStoreHandleMarkerChanged выполняет тестирование обновления снимка по событию из Kafka
func TestMarkerStoreHandleMarkerChanged(t *testing.T) {
	fetcher := services_mocks.NewMockMarkerServiceInterface(t)
	fetcher.On("FetchMarkers", mock.Anything).Return([]models.MarkerRecord{storeRecord("a")}, nil).Once()

	store := NewMarkerStore(fetcher, logger.NewTest())
	require.NoError(t, store.HandleMarkerChanged(context.Background(), &models.Event{Type: models.EventTypeMarkerChanged}))

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "a", snapshot[0].ID)

	// Снимок - копия, изменения вызывающего кода не попадают в store
	snapshot[0].ID = "changed"
	assert.Equal(t, "a", store.Snapshot()[0].ID)
}
