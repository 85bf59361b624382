package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
)

// Cache is a mock type for the Cache type
type Cache struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, key, dst
func (_m *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	ret := _m.Called(ctx, key, dst)
	return ret.Bool(0), ret.Error(1)
}

// Set provides a mock function with given fields: ctx, key, value
func (_m *Cache) Set(ctx context.Context, key string, value any) error {
	ret := _m.Called(ctx, key, value)
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, keys
func (_m *Cache) Delete(ctx context.Context, keys ...string) error {
	args := []any{ctx}
	for _, k := range keys {
		args = append(args, k)
	}
	ret := _m.Called(args...)
	return ret.Error(0)
}

// NewCache creates a new instance of Cache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *Cache {
	m := &Cache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
