package models

import (
	"fmt"
	"time"
)

// MarkerRecord - запись точки интереса из хранилища маркеров (без валидации)
type MarkerRecord struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Coordinate *RawCoordinate `json:"coordinate"`
	Color      string         `json:"color,omitempty"`
	Route      string         `json:"route,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Marker - точка интереса с проверенной координатой
type Marker struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Coordinate Coordinate `json:"coordinate"`
	Color      string     `json:"color,omitempty"`
	Route      string     `json:"route,omitempty"`
}

// Validate превращает запись в Marker либо возвращает ошибку, если координата некорректна
func (r MarkerRecord) Validate() (Marker, error) {
	if r.Coordinate == nil {
		return Marker{}, fmt.Errorf("marker %s: %w", r.ID, ErrInvalidCoordinates)
	}
	c, err := r.Coordinate.Parse()
	if err != nil {
		return Marker{}, fmt.Errorf("marker %s: %w", r.ID, err)
	}
	return Marker{
		ID:         r.ID,
		Title:      r.Title,
		Coordinate: c,
		Color:      r.Color,
		Route:      r.Route,
	}, nil
}

// MarkerRequest - тело запроса на создание или замену маркера
type MarkerRequest struct {
	Title      string        `json:"title"`
	Coordinate RawCoordinate `json:"coordinate"`
	Color      string        `json:"color"`
	Route      string        `json:"route"`
}

// Типы изменения маркера, публикуемые в Kafka
const (
	MarkerActionCreated  = "created"
	MarkerActionReplaced = "replaced"
	MarkerActionDeleted  = "deleted"
)
