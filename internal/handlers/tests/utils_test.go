package handler_tests

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/stretchr/testify/assert"

	"travel-map/internal/handlers"
)

func TestExtractUUIDFromPath(t *testing.T) {
	for _, tc := range extractUUIDFromPathTestCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := handlers.ExtractUUIDFromPath(tc.path, tc.prefix)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Contains(t, tc.path, id.String())
		})
	}
}

// TestCorsPreflight выполняет тестирование ответа на preflight-запрос
func TestCorsPreflight(t *testing.T) {
	server := httptest.NewServer(handlers.NewMux(handlers.Router{}))
	defer server.Close()

	e := httpexpect.Default(t, server.URL)
	e.GET("/health").Expect().Status(http.StatusOK).JSON().Object().Value("status").IsEqual("ok")

	called := false
	wrapped := handlers.CorsMiddleware(func(w http.ResponseWriter, r *http.Request) { called = true })
	rec := httptest.NewRecorder()
	wrapped(rec, httptest.NewRequest(http.MethodOptions, "/api/markers", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)
}

func TestHealthReportsFailedDependencies(t *testing.T) {
	server := httptest.NewServer(handlers.NewMux(handlers.Router{
		HealthChecks: map[string]handlers.HealthCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		},
	}))
	defer server.Close()

	obj := httpexpect.Default(t, server.URL).GET("/health").
		Expect().Status(http.StatusServiceUnavailable).JSON().Object()
	obj.Value("status").IsEqual("unavailable")
	obj.Value("failed").Array().IsEqual([]string{"redis"})
}
