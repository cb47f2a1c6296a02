package redis_mocks

import (
	"context"
	"time"

	mock "github.com/stretchr/testify/mock"
)

// NewMockRedisClientInterface creates a new instance of MockRedisClientInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockRedisClientInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRedisClientInterface {
	mock := &MockRedisClientInterface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// MockRedisClientInterface is a mock type for the RedisClientInterface type
type MockRedisClientInterface struct {
	mock.Mock
}

// Delete provides a mock function for the type MockRedisClientInterface
func (_mock *MockRedisClientInterface) Delete(ctx context.Context, key string) error {
	ret := _mock.Called(ctx, key)

	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}

	var r0 error
	if returnFunc, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = returnFunc(ctx, key)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// Get provides a mock function for the type MockRedisClientInterface
func (_mock *MockRedisClientInterface) Get(ctx context.Context, key string, dest interface{}) error {
	ret := _mock.Called(ctx, key, dest)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 error
	if returnFunc, ok := ret.Get(0).(func(context.Context, string, interface{}) error); ok {
		r0 = returnFunc(ctx, key, dest)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// Hit provides a mock function for the type MockRedisClientInterface
func (_mock *MockRedisClientInterface) Hit() {
	_mock.Called()
}

// Miss provides a mock function for the type MockRedisClientInterface
func (_mock *MockRedisClientInterface) Miss() {
	_mock.Called()
}

// Set provides a mock function for the type MockRedisClientInterface
func (_mock *MockRedisClientInterface) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	ret := _mock.Called(ctx, key, value, expiration)

	if len(ret) == 0 {
		panic("no return value specified for Set")
	}

	var r0 error
	if returnFunc, ok := ret.Get(0).(func(context.Context, string, interface{}, time.Duration) error); ok {
		r0 = returnFunc(ctx, key, value, expiration)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}
