// Package routing собирает маркеры в пешие маршруты и готовит запросы к провайдеру маршрутов.
// Все функции пакета чистые: без ввода-вывода и без общего состояния.
package routing

import "travel-map/internal/models"

// Group раскладывает маркеры по ключу маршрута за один проход слева направо.
// Маркеры без маршрута попадают в группу models.NoRouteKey.
// Порядок участников группы совпадает с порядком маркеров во входном снимке.
func Group(markers []models.Marker) map[string]models.RouteGroup {
	groups := make(map[string]models.RouteGroup)
	for _, m := range markers {
		key := m.Route
		if key == "" {
			key = models.NoRouteKey
		}
		g := groups[key]
		g.Key = key
		g.Members = append(g.Members, m)
		groups[key] = g
	}
	return groups
}

// ValidMarkers отбрасывает записи с отсутствующей или некорректной координатой.
// Возвращает проверенные маркеры в исходном порядке и ID отброшенных записей.
func ValidMarkers(records []models.MarkerRecord) ([]models.Marker, []string) {
	valid := make([]models.Marker, 0, len(records))
	var dropped []string
	for _, r := range records {
		m, err := r.Validate()
		if err != nil {
			dropped = append(dropped, r.ID)
			continue
		}
		valid = append(valid, m)
	}
	return valid, dropped
}
