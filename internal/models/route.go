package models

// NoRouteKey - ключ группы для маркеров без маршрута. Для неё маршрут никогда не строится
const NoRouteKey = "noRoute"

// TravelModeWalking - единственный режим передвижения, который запрашивает карта
const TravelModeWalking = "WALKING"

// RouteGroup - маркеры с одинаковым ключом маршрута в порядке их появления в снимке
type RouteGroup struct {
	Key     string   `json:"key"`
	Members []Marker `json:"members"`
}

// DirectionsRequest - запрос к внешнему провайдеру маршрутов
type DirectionsRequest struct {
	Route       string       `json:"route,omitempty"`
	Origin      Coordinate   `json:"origin"`
	Waypoints   []Coordinate `json:"waypoints"`
	Destination Coordinate   `json:"destination"`
	Mode        string       `json:"mode"`
	Color       string       `json:"color,omitempty"`
}

// Points возвращает все точки запроса по порядку: origin, waypoints, destination
func (r DirectionsRequest) Points() []Coordinate {
	points := make([]Coordinate, 0, len(r.Waypoints)+2)
	points = append(points, r.Origin)
	points = append(points, r.Waypoints...)
	return append(points, r.Destination)
}

// Path - маршрут, построенный провайдером
type Path struct {
	Distance float64      `json:"distance"`
	Duration float64      `json:"duration"`
	Points   []Coordinate `json:"points"`
}
