package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-map/internal/models"
)

// TestDecodeCoordinate выполняет тестирование чтения координат из JSONB
func TestDecodeCoordinate(t *testing.T) {
	raw := decodeCoordinate([]byte(`{"latitude": 55.75, "longitude": 37.61}`))
	require.NotNil(t, raw)
	c, err := raw.Parse()
	require.NoError(t, err)
	assert.Equal(t, models.Coordinate{Latitude: 55.75, Longitude: 37.61}, c)

	legacy := decodeCoordinate([]byte(`{"latitude": "abc", "longitude": 1.0}`))
	require.NotNil(t, legacy)
	_, err = legacy.Parse()
	assert.ErrorIs(t, err, models.ErrInvalidCoordinates)

	assert.Nil(t, decodeCoordinate(nil))
	assert.Nil(t, decodeCoordinate([]byte(`not json`)))
}

func TestEncodeCoordinate(t *testing.T) {
	data, err := encodeCoordinate(models.RawCoordinate{Latitude: "10.5", Longitude: 20.25})
	require.NoError(t, err)
	assert.JSONEq(t, `{"latitude": 10.5, "longitude": 20.25}`, string(data))

	_, err = encodeCoordinate(models.RawCoordinate{Latitude: "north", Longitude: 1.0})
	assert.ErrorIs(t, err, models.ErrInvalidCoordinates)
}
