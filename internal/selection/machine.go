// Package selection - конечный автомат режимов экрана карты:
// ожидание, открытый список маркеров, выбранный маркер и активный поиск.
package selection

import "travel-map/internal/models"

// EventType - тип пользовательского события
type EventType int

const (
	// SearchResolved - введённый текст успешно геокодирован
	SearchResolved EventType = iota
	// SearchFocused - поле поиска получило фокус
	SearchFocused
	// MarkerChosen - маркер выбран в выпадающем списке
	MarkerChosen
	// MapTapped - нажатие на карту
	MapTapped
	// SearchCleared - пользователь сбросил поиск
	SearchCleared
)

func (t EventType) String() string {
	switch t {
	case SearchResolved:
		return "search_resolved"
	case SearchFocused:
		return "search_focused"
	case MarkerChosen:
		return "marker_chosen"
	case MapTapped:
		return "map_tapped"
	case SearchCleared:
		return "search_cleared"
	default:
		return "unknown"
	}
}

// Event - событие автомата. Location заполняется для SearchResolved, Marker - для MarkerChosen
type Event struct {
	Type     EventType
	Location models.Coordinate
	Marker   models.Marker
}

// EffectKind - что происходит с регионом карты после перехода
type EffectKind int

const (
	EffectNone EffectKind = iota
	// EffectRecentre - перенести центр карты в Effect.Center
	EffectRecentre
	// EffectFallbackToDevice - вернуть карту к текущему местоположению устройства
	EffectFallbackToDevice
)

// Effect - побочный эффект перехода для региона карты
type Effect struct {
	Kind   EffectKind
	Center models.Coordinate
}

// Apply выполняет переход. Для событий, не описанных для текущего состояния,
// состояние не меняется и возвращается EffectNone.
func Apply(state models.SelectionState, ev Event) (models.SelectionState, Effect) {
	switch ev.Type {
	case SearchResolved:
		return models.SearchActiveSelection(ev.Location), Effect{Kind: EffectRecentre, Center: ev.Location}
	case SearchFocused, MapTapped:
		return models.PickerOpenSelection(), Effect{}
	case MarkerChosen:
		if state.Mode != models.SelectionPickerOpen {
			return state, Effect{}
		}
		return models.MarkerSelectedSelection(ev.Marker), Effect{Kind: EffectRecentre, Center: ev.Marker.Coordinate}
	case SearchCleared:
		if state.Mode != models.SelectionSearchActive {
			return state, Effect{}
		}
		return models.IdleSelection(), Effect{Kind: EffectFallbackToDevice}
	}
	return state, Effect{}
}
