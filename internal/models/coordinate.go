package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCoordinates возвращается, если координату невозможно интерпретировать как точку WGS84
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Coordinate - точка на карте в градусах WGS84
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid проверяет, что обе компоненты конечны и лежат в допустимых диапазонах
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) {
		return false
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// LngLat возвращает пару (lng, lat) в порядке, принятом у OpenrouteService
func (c Coordinate) LngLat() [2]float64 {
	return [2]float64{c.Longitude, c.Latitude}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

/*
RawCoordinate - координата в том виде, в котором она лежит во внешнем хранилище маркеров.
Значения не типизированы: админка сохраняла их строками из текстовых полей, поэтому
встречаются и числа, и строки, и мусор вроде "abc".
*/
type RawCoordinate struct {
	Latitude  interface{} `json:"latitude"`
	Longitude interface{} `json:"longitude"`
}

// NewRawCoordinate упаковывает валидную координату в сырой вид
func NewRawCoordinate(c Coordinate) RawCoordinate {
	return RawCoordinate{Latitude: c.Latitude, Longitude: c.Longitude}
}

// Parse приводит сырые значения к Coordinate
func (r RawCoordinate) Parse() (Coordinate, error) {
	lat, err := parseDegrees(r.Latitude)
	if err != nil {
		return Coordinate{}, fmt.Errorf("latitude: %w", err)
	}
	lng, err := parseDegrees(r.Longitude)
	if err != nil {
		return Coordinate{}, fmt.Errorf("longitude: %w", err)
	}

	c := Coordinate{Latitude: lat, Longitude: lng}
	if !c.Valid() {
		return Coordinate{}, ErrInvalidCoordinates
	}
	return c, nil
}

func parseDegrees(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, ErrInvalidCoordinates
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, ErrInvalidCoordinates
		}
		return f, nil
	case interface{ Float64() (float64, error) }:
		// json.Number
		f, err := val.Float64()
		if err != nil {
			return 0, ErrInvalidCoordinates
		}
		return f, nil
	default:
		return 0, ErrInvalidCoordinates
	}
}
