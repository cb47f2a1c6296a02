package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"travel-map/internal/models"
)

var (
	loc    = models.Coordinate{Latitude: 48.85, Longitude: 2.35}
	marker = models.Marker{ID: "m1", Title: "Louvre", Coordinate: models.Coordinate{Latitude: 48.86, Longitude: 2.33}}

	allStates = map[string]models.SelectionState{
		"idle":            models.IdleSelection(),
		"picker_open":     models.PickerOpenSelection(),
		"marker_selected": models.MarkerSelectedSelection(marker),
		"search_active":   models.SearchActiveSelection(loc),
	}
)

// TestMapTappedFromAnyState выполняет тестирование нажатия на карту из любого состояния
func TestMapTappedFromAnyState(t *testing.T) {
	for name, state := range allStates {
		t.Run(name, func(t *testing.T) {
			next, effect := Apply(state, Event{Type: MapTapped})
			assert.Equal(t, models.SelectionPickerOpen, next.Mode)
			assert.Nil(t, next.Marker)
			assert.Nil(t, next.SearchLocation)
			assert.Equal(t, EffectNone, effect.Kind)
		})
	}
}

func TestSearchFocusedFromAnyState(t *testing.T) {
	for name, state := range allStates {
		t.Run(name, func(t *testing.T) {
			next, _ := Apply(state, Event{Type: SearchFocused})
			assert.Equal(t, models.PickerOpenSelection(), next)
		})
	}
}

func TestSearchResolvedFromAnyState(t *testing.T) {
	for name, state := range allStates {
		t.Run(name, func(t *testing.T) {
			next, effect := Apply(state, Event{Type: SearchResolved, Location: loc})
			assert.Equal(t, models.SearchActiveSelection(loc), next)
			assert.Nil(t, next.Marker)
			assert.Equal(t, Effect{Kind: EffectRecentre, Center: loc}, effect)
		})
	}
}

// TestMarkerChosen выполняет тестирование выбора маркера из списка
func TestMarkerChosen(t *testing.T) {
	next, effect := Apply(models.PickerOpenSelection(), Event{Type: MarkerChosen, Marker: marker})

	assert.Equal(t, models.SelectionMarkerSelected, next.Mode)
	assert.Equal(t, &marker, next.Marker)
	assert.Nil(t, next.SearchLocation)
	assert.Equal(t, Effect{Kind: EffectRecentre, Center: marker.Coordinate}, effect)
}

func TestMarkerChosenOutsidePickerIsNoop(t *testing.T) {
	for _, name := range []string{"idle", "marker_selected", "search_active"} {
		state := allStates[name]
		next, effect := Apply(state, Event{Type: MarkerChosen, Marker: models.Marker{ID: "other"}})
		assert.Equal(t, state, next, name)
		assert.Equal(t, EffectNone, effect.Kind, name)
	}
}

func TestSearchCleared(t *testing.T) {
	next, effect := Apply(models.SearchActiveSelection(loc), Event{Type: SearchCleared})
	assert.Equal(t, models.IdleSelection(), next)
	assert.Equal(t, EffectFallbackToDevice, effect.Kind)

	for _, name := range []string{"idle", "picker_open", "marker_selected"} {
		state := allStates[name]
		next, effect := Apply(state, Event{Type: SearchCleared})
		assert.Equal(t, state, next, name)
		assert.Equal(t, EffectNone, effect.Kind, name)
	}
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "map_tapped", MapTapped.String())
	assert.Equal(t, "unknown", EventType(99).String())
}
