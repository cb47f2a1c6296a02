package services_mocks

import (
	"context"

	"travel-map/internal/models"

	"github.com/google/uuid"

	mock "github.com/stretchr/testify/mock"
)

// NewMockMarkerServiceInterface creates a new instance of MockMarkerServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockMarkerServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMarkerServiceInterface {
	mock := &MockMarkerServiceInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// MockMarkerServiceInterface is a mock type for the MarkerServiceInterface type
type MockMarkerServiceInterface struct {
	mock.Mock
}

// CreateMarker provides a mock function for the type MockMarkerServiceInterface
func (_mock *MockMarkerServiceInterface) CreateMarker(ctx context.Context, req *models.MarkerRequest) (*models.MarkerRecord, error) {
	ret := _mock.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for CreateMarker")
	}

	var r0 *models.MarkerRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.MarkerRecord)
	}
	return r0, ret.Error(1)
}

// DeleteMarker provides a mock function for the type MockMarkerServiceInterface
func (_mock *MockMarkerServiceInterface) DeleteMarker(ctx context.Context, id uuid.UUID) error {
	ret := _mock.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for DeleteMarker")
	}

	return ret.Error(0)
}

// FetchMarkers provides a mock function for the type MockMarkerServiceInterface
func (_mock *MockMarkerServiceInterface) FetchMarkers(ctx context.Context) ([]models.MarkerRecord, error) {
	ret := _mock.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for FetchMarkers")
	}

	var r0 []models.MarkerRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.MarkerRecord)
	}
	return r0, ret.Error(1)
}

// GetMarker provides a mock function for the type MockMarkerServiceInterface
func (_mock *MockMarkerServiceInterface) GetMarker(ctx context.Context, id uuid.UUID) (*models.MarkerRecord, error) {
	ret := _mock.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetMarker")
	}

	var r0 *models.MarkerRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.MarkerRecord)
	}
	return r0, ret.Error(1)
}

// ListMarkers provides a mock function for the type MockMarkerServiceInterface
func (_mock *MockMarkerServiceInterface) ListMarkers(ctx context.Context, search string) ([]models.MarkerRecord, error) {
	ret := _mock.Called(ctx, search)

	if len(ret) == 0 {
		panic("no return value specified for ListMarkers")
	}

	var r0 []models.MarkerRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.MarkerRecord)
	}
	return r0, ret.Error(1)
}

// ReplaceMarker provides a mock function for the type MockMarkerServiceInterface
func (_mock *MockMarkerServiceInterface) ReplaceMarker(ctx context.Context, id uuid.UUID, req *models.MarkerRequest) (*models.MarkerRecord, error) {
	ret := _mock.Called(ctx, id, req)

	if len(ret) == 0 {
		panic("no return value specified for ReplaceMarker")
	}

	var r0 *models.MarkerRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.MarkerRecord)
	}
	return r0, ret.Error(1)
}
