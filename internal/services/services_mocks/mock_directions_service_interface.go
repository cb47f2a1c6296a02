package services_mocks

import (
	"context"

	"travel-map/internal/models"

	mock "github.com/stretchr/testify/mock"
)

// NewMockDirectionsServiceInterface creates a new instance of MockDirectionsServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockDirectionsServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDirectionsServiceInterface {
	mock := &MockDirectionsServiceInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// MockDirectionsServiceInterface is a mock type for the DirectionsServiceInterface type
type MockDirectionsServiceInterface struct {
	mock.Mock
}

// Directions provides a mock function for the type MockDirectionsServiceInterface
func (_mock *MockDirectionsServiceInterface) Directions(ctx context.Context, req models.DirectionsRequest) (*models.Path, error) {
	ret := _mock.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Directions")
	}

	var r0 *models.Path
	var r1 error
	if returnFunc, ok := ret.Get(0).(func(context.Context, models.DirectionsRequest) (*models.Path, error)); ok {
		return returnFunc(ctx, req)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Path)
	}
	r1 = ret.Error(1)
	return r0, r1
}
