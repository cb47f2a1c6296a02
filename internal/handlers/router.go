package handlers

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"
)

// HealthCheck проверяет доступность внешней зависимости
type HealthCheck func(ctx context.Context) error

// Router - набор хендлеров приложения. Незаполненные хендлеры не регистрируются
type Router struct {
	Markers      *MarkerHandler
	MapSessions  *MapSessionHandler
	Directions   *DirectionsHandler
	RedisMetrics *RedisMetricsHandler
	KafkaMetrics *KafkaMetricsHandler
	Metrics      http.Handler
	HealthChecks map[string]HealthCheck
}

// NewMux настраивает HTTP-маршруты
func NewMux(rt Router) *http.ServeMux {
	mux := http.NewServeMux()

	if rt.Markers != nil {
		mux.HandleFunc("/api/markers", CorsMiddleware(handleMarkersRoute(rt.Markers)))
		mux.HandleFunc(apiMarkerPrefix, CorsMiddleware(handleMarkerRoute(rt.Markers)))
	}
	if rt.MapSessions != nil {
		mux.HandleFunc("/api/map/sessions", CorsMiddleware(rt.MapSessions.OpenSession))
		mux.HandleFunc(apiMapSessionPrefix, CorsMiddleware(handleMapSessionRoute(rt.MapSessions)))
	}
	if rt.Directions != nil {
		mux.HandleFunc("/api/directions", CorsMiddleware(rt.Directions.GetDirections))
	}
	if rt.RedisMetrics != nil {
		mux.HandleFunc("/api/cache/metrics", CorsMiddleware(rt.RedisMetrics.GetStatistics))
	}
	if rt.KafkaMetrics != nil {
		mux.HandleFunc("/api/kafka/stats", CorsMiddleware(rt.KafkaMetrics.GetStatistics))
	}
	if rt.Metrics != nil {
		mux.Handle("/metrics", rt.Metrics)
	}

	mux.HandleFunc("/health", handleHealth(rt.HealthChecks))

	return mux
}

// handleHealth отвечает 503 со списком недоступных зависимостей, если хотя бы одна проверка не прошла
func handleHealth(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		failed := make([]string, 0)
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failed = append(failed, name)
			}
		}
		if len(failed) > 0 {
			sort.Strings(failed)
			writeJSONResponse(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unavailable",
				"failed": failed,
			})
			return
		}
		writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// CorsMiddleware добавляет CORS-заголовки и отвечает на preflight-запросы
func CorsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// handleMarkersRoute обрабатывает маршруты для коллекции маркеров
func handleMarkersRoute(handler *MarkerHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handler.GetMarkers(w, r)
		case http.MethodPost:
			handler.CreateMarker(w, r)
		default:
			writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

// handleMarkerRoute обрабатывает маршруты для отдельного маркера
func handleMarkerRoute(handler *MarkerHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handler.GetMarker(w, r)
		case http.MethodPut:
			handler.ReplaceMarker(w, r)
		case http.MethodDelete:
			handler.DeleteMarker(w, r)
		default:
			writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

// handleMapSessionRoute обрабатывает маршруты для отдельного экрана карты
func handleMapSessionRoute(handler *MapSessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/events") {
			handler.PostEvent(w, r)
			return
		}

		switch r.Method {
		case http.MethodGet:
			handler.GetSession(w, r)
		case http.MethodDelete:
			handler.CloseSession(w, r)
		default:
			writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}
