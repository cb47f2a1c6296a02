package services

import "travel-map/internal/models"

// Значение полилинии занимает не больше 32 бит, т.е. не больше семи 5-битных групп
const maxPolylineShift = 30

// decodePolyline разбирает геометрию в формате Google encoded polyline (точность 1e5),
// в котором OpenrouteService возвращает маршрут. Обрезанный или повреждённый хвост
// отбрасывается вместе с непарным значением
func decodePolyline(encoded string) []models.Coordinate {
	if encoded == "" {
		return nil
	}

	var (
		points []models.Coordinate
		index  int
		lat    int
		lng    int
	)
	for index < len(encoded) {
		dLat, next, ok := decodePolylineValue(encoded, index)
		if !ok {
			break
		}
		dLng, next, ok := decodePolylineValue(encoded, next)
		if !ok {
			break
		}
		index = next
		lat += dLat
		lng += dLng

		points = append(points, models.Coordinate{
			Latitude:  float64(lat) / 1e5,
			Longitude: float64(lng) / 1e5,
		})
	}
	return points
}

// decodePolylineValue возвращает значение, индекс следующего символа и false,
// если значение не завершено до конца строки или длиннее допустимого
func decodePolylineValue(encoded string, index int) (int, int, bool) {
	shift, result := 0, 0
	for {
		if index >= len(encoded) || shift > maxPolylineShift {
			return 0, index, false
		}
		b := int(encoded[index]) - 63
		index++
		if b < 0 {
			return 0, index, false
		}
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	if result&1 != 0 {
		return ^(result >> 1), index, true
	}
	return result >> 1, index, true
}
