package services_mocks

import (
	"travel-map/internal/models"

	mock "github.com/stretchr/testify/mock"
)

// NewMockKafkaMetricsServiceInterface creates a new instance of MockKafkaMetricsServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockKafkaMetricsServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockKafkaMetricsServiceInterface {
	mock := &MockKafkaMetricsServiceInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// MockKafkaMetricsServiceInterface is a mock type for the KafkaMetricsServiceInterface type
type MockKafkaMetricsServiceInterface struct {
	mock.Mock
}

// GetStatistics provides a mock function for the type MockKafkaMetricsServiceInterface
func (_mock *MockKafkaMetricsServiceInterface) GetStatistics() *models.EventStatisticsResponse {
	ret := _mock.Called()

	if len(ret) == 0 {
		panic("no return value specified for GetStatistics")
	}

	var r0 *models.EventStatisticsResponse
	if returnFunc, ok := ret.Get(0).(func() *models.EventStatisticsResponse); ok {
		r0 = returnFunc()
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.EventStatisticsResponse)
	}
	return r0
}
