package models

import "errors"

var (
	// ErrPermissionDenied - устройство не дало доступа к геолокации или ещё не прислало ни одной точки
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrNotFound - геокодер не нашёл ни одного объекта по запросу
	ErrNotFound = errors.New("location not found")
	// ErrNoRoute - провайдер маршрутов не смог построить путь
	ErrNoRoute = errors.New("no route found")
	// ErrMarkerNotFound - маркер с указанным ID отсутствует
	ErrMarkerNotFound = errors.New("marker not found")
)
