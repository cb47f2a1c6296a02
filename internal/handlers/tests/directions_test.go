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

// TestGetDirections выполняет тестирование построения маршрута
func TestGetDirections(t *testing.T) {
	for _, tc := range getDirectionsTestCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			mockDirections := services_mocks.NewMockDirectionsServiceInterface(t)

			h := handlers.NewDirectionsHandler(mockDirections, logger.NewTest())
			server := httptest.NewServer(setupTestDirectionsRoute(h))
			defer server.Close()

			if tc.callsService {
				mockDirections.On("Directions", mock.Anything, directionsRequest).Return(tc.returnedValue, tc.returnedError).Once()
			}

			e := httpexpect.Default(t, server.URL)
			resp := e.POST("/api/directions").WithJSON(tc.payload).Expect().Status(tc.expectedStatusCode)
			if tc.expectedStatusCode == http.StatusOK {
				obj := resp.JSON().Object()
				obj.Value("distance").Number().IsEqual(tc.returnedValue.Distance)
				obj.Value("points").Array().Length().IsEqual(2)
			}
		})
	}
}
