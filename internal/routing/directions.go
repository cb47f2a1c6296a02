package routing

import (
	"hash/fnv"
	"sort"

	"travel-map/internal/models"
)

// SearchRouteColor - цвет линии маршрута до найденного через поиск места
const SearchRouteColor = "#1E88E5"

// palette - цвета линий маршрутов. Цвет выбирается по ключу маршрута, поэтому не меняется между отрисовками
var palette = []string{
	"#E53935", "#8E24AA", "#3949AB", "#00897B",
	"#43A047", "#FDD835", "#FB8C00", "#6D4C41",
}

// BuildRouteRequest возвращает запрос на построение маршрута для группы.
// Для группы models.NoRouteKey и для групп меньше чем из двух маркеров запрос не строится.
func BuildRouteRequest(group models.RouteGroup) (models.DirectionsRequest, bool) {
	if group.Key == models.NoRouteKey || len(group.Members) < 2 {
		return models.DirectionsRequest{}, false
	}

	last := len(group.Members) - 1
	waypoints := make([]models.Coordinate, 0, last-1)
	for _, m := range group.Members[1:last] {
		waypoints = append(waypoints, m.Coordinate)
	}

	return models.DirectionsRequest{
		Route:       group.Key,
		Origin:      group.Members[0].Coordinate,
		Waypoints:   waypoints,
		Destination: group.Members[last].Coordinate,
		Mode:        models.TravelModeWalking,
		Color:       RouteColor(group.Key),
	}, true
}

// BuildSearchRequest возвращает запрос от текущего местоположения до найденного места, без промежуточных точек
func BuildSearchRequest(origin, destination models.Coordinate) models.DirectionsRequest {
	return models.DirectionsRequest{
		Origin:      origin,
		Waypoints:   []models.Coordinate{},
		Destination: destination,
		Mode:        models.TravelModeWalking,
		Color:       SearchRouteColor,
	}
}

// BuildRouteRequests строит запросы для всех подходящих групп в порядке ключей
func BuildRouteRequests(groups map[string]models.RouteGroup) []models.DirectionsRequest {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	requests := make([]models.DirectionsRequest, 0, len(keys))
	for _, k := range keys {
		if req, ok := BuildRouteRequest(groups[k]); ok {
			requests = append(requests, req)
		}
	}
	return requests
}

// RouteColor возвращает цвет линии для маршрута
func RouteColor(key string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return palette[h.Sum32()%uint32(len(palette))]
}
