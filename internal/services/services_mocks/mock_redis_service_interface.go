package services_mocks

import (
	"context"

	"travel-map/internal/models"

	mock "github.com/stretchr/testify/mock"
)

// NewMockRedisServiceInterface creates a new instance of MockRedisServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockRedisServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRedisServiceInterface {
	mock := &MockRedisServiceInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// MockRedisServiceInterface is a mock type for the RedisServiceInterface type
type MockRedisServiceInterface struct {
	mock.Mock
}

// GetStatistics provides a mock function for the type MockRedisServiceInterface
func (_mock *MockRedisServiceInterface) GetStatistics(ctx context.Context) (*models.CacheMetricsResponse, error) {
	ret := _mock.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for GetStatistics")
	}

	var r0 *models.CacheMetricsResponse
	var r1 error
	if returnFunc, ok := ret.Get(0).(func(context.Context) (*models.CacheMetricsResponse, error)); ok {
		return returnFunc(ctx)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.CacheMetricsResponse)
	}
	r1 = ret.Error(1)
	return r0, r1
}
