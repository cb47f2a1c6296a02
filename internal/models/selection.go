package models

// SelectionMode - режим экрана карты
type SelectionMode string

const (
	SelectionIdle           SelectionMode = "idle"
	SelectionPickerOpen     SelectionMode = "picker_open"
	SelectionMarkerSelected SelectionMode = "marker_selected"
	SelectionSearchActive   SelectionMode = "search_active"
)

/*
SelectionState - текущий режим выбора на карте.
Marker заполнен только в режиме SelectionMarkerSelected, SearchLocation - только в SelectionSearchActive.
Значения создаются только через конструкторы ниже, поэтому смешанных состояний не бывает.
*/
type SelectionState struct {
	Mode           SelectionMode `json:"mode"`
	Marker         *Marker       `json:"marker,omitempty"`
	SearchLocation *Coordinate   `json:"search_location,omitempty"`
}

func IdleSelection() SelectionState {
	return SelectionState{Mode: SelectionIdle}
}

func PickerOpenSelection() SelectionState {
	return SelectionState{Mode: SelectionPickerOpen}
}

func MarkerSelectedSelection(m Marker) SelectionState {
	return SelectionState{Mode: SelectionMarkerSelected, Marker: &m}
}

func SearchActiveSelection(loc Coordinate) SelectionState {
	return SelectionState{Mode: SelectionSearchActive, SearchLocation: &loc}
}
