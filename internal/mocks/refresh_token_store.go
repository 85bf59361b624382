package mocks

import (
	context "context"
	time "time"

	model "github.com/dtroode/portfolio/internal/model"
	mock "github.com/stretchr/testify/mock"

	uuid "github.com/google/uuid"
)

// RefreshTokenStore is a mock type for the RefreshTokenStore type
type RefreshTokenStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, token
func (_m *RefreshTokenStore) Create(ctx context.Context, token model.RefreshToken) error {
	ret := _m.Called(ctx, token)
	return ret.Error(0)
}

// GetByJTI provides a mock function with given fields: ctx, jti
func (_m *RefreshTokenStore) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	ret := _m.Called(ctx, jti)
	return ret.Get(0).(model.RefreshToken), ret.Error(1)
}

// RevokeByJTI provides a mock function with given fields: ctx, jti
func (_m *RefreshTokenStore) RevokeByJTI(ctx context.Context, jti string) error {
	ret := _m.Called(ctx, jti)
	return ret.Error(0)
}

// RevokeAllByUser provides a mock function with given fields: ctx, userID
func (_m *RefreshTokenStore) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}

// DeleteExpired provides a mock function with given fields: ctx, before
func (_m *RefreshTokenStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	ret := _m.Called(ctx, before)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewRefreshTokenStore creates a new instance of RefreshTokenStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRefreshTokenStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *RefreshTokenStore {
	m := &RefreshTokenStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
