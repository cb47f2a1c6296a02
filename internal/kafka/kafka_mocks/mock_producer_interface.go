package kafka_mocks

import (
	mock "github.com/stretchr/testify/mock"
)

// NewMockProducerInterface creates a new instance of MockProducerInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockProducerInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProducerInterface {
	mock := &MockProducerInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// MockProducerInterface is a mock type for the ProducerInterface type
type MockProducerInterface struct {
	mock.Mock
}

// PublishMarkerChanged provides a mock function for the type MockProducerInterface
func (_mock *MockProducerInterface) PublishMarkerChanged(markerID string, action string) error {
	ret := _mock.Called(markerID, action)

	if len(ret) == 0 {
		panic("no return value specified for PublishMarkerChanged")
	}

	var r0 error
	if returnFunc, ok := ret.Get(0).(func(string, string) error); ok {
		r0 = returnFunc(markerID, action)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}
