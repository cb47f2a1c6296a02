package models

// DefaultRegionDelta - масштаб карты по умолчанию
const DefaultRegionDelta = 0.02

// RenderRegion - цель камеры карты
type RenderRegion struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

// RegionAt возвращает регион с центром в точке c и масштабом по умолчанию
func RegionAt(c Coordinate) RenderRegion {
	return RenderRegion{
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		LatitudeDelta:  DefaultRegionDelta,
		LongitudeDelta: DefaultRegionDelta,
	}
}

// Center возвращает центр региона
func (r RenderRegion) Center() Coordinate {
	return Coordinate{Latitude: r.Latitude, Longitude: r.Longitude}
}

// RenderSnapshot - данные, которые отрисовывает внешний слой карты
type RenderSnapshot struct {
	Revision           uint64              `json:"revision"`
	Region             RenderRegion        `json:"region"`
	DeviceLocation     *Coordinate         `json:"device_location,omitempty"`
	Markers            []Marker            `json:"markers"`
	DirectionsRequests []DirectionsRequest `json:"directions_requests"`
	Selection          SelectionState      `json:"selection"`
	Notice             string              `json:"notice,omitempty"`
}
