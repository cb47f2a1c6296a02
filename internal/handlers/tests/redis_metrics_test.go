package handler_tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/stretchr/testify/mock"

	"travel-map/internal/handlers"
	"travel-map/internal/logger"
	"travel-map/internal/services/services_mocks"
)

// TestRedisGetStatistics выполняет тестирование на получение статистики кеша геосервисов
func TestRedisGetStatistics(t *testing.T) {
	for _, tc := range getRedisMetricsTestCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			mockRedis := services_mocks.NewMockRedisServiceInterface(t)
			mockRedis.On("GetStatistics", mock.Anything).Return(tc.returnedValue, tc.returnedError).Once()

			h := handlers.NewRedisMetricsHandler(mockRedis, logger.NewTest())
			server := httptest.NewServer(setupTestRedisMetricsRoute(h))
			defer server.Close()

			obj := httpexpect.Default(t, server.URL).GET("/api/cache/metrics").
				Expect().Status(tc.expectedStatusCode).JSON().Object()
			if tc.expectedStatusCode != http.StatusOK {
				obj.ContainsKey("error")
				return
			}
			obj.Value("hits").Number().IsEqual(tc.returnedValue.Hits)
			obj.Value("hit_rate").Number().IsEqual(tc.returnedValue.HitRate)
			obj.Value("miss_rate").Number().IsEqual(tc.returnedValue.MissRate)
			obj.Value("cache_size").Number().IsEqual(tc.returnedValue.CacheSize)
		})
	}
}
