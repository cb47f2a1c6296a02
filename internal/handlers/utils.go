package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	apiMarkerPrefix     = "/api/markers/"
	apiMapSessionPrefix = "/api/map/sessions/"
)

// writeJSONResponse записывает JSON-ответ
func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// writeErrorResponse записывает ответ с ошибкой
func writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	writeJSONResponse(w, statusCode, map[string]string{"error": message})
}

// WriteErrorResponse - экспортируемая версия writeErrorResponse для роутинга
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	writeErrorResponse(w, statusCode, message)
}

// extractUUIDFromPath извлекает UUID из первого сегмента пути после prefix
func extractUUIDFromPath(path, prefix string) (uuid.UUID, error) {
	if !strings.HasPrefix(path, prefix) {
		return uuid.Nil, fmt.Errorf("path %q does not start with %q", path, prefix)
	}

	segment := strings.SplitN(strings.TrimPrefix(path, prefix), "/", 2)[0]
	if segment == "" {
		return uuid.Nil, fmt.Errorf("path %q has no id", path)
	}
	return uuid.Parse(segment)
}

// ExtractUUIDFromPath - экспортируемая версия extractUUIDFromPath
func ExtractUUIDFromPath(path, prefix string) (uuid.UUID, error) {
	return extractUUIDFromPath(path, prefix)
}

// decodeJSONBody читает тело запроса в dest
func decodeJSONBody(r *http.Request, dest interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	return json.NewDecoder(r.Body).Decode(dest)
}
