package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	model "github.com/dtroode/portfolio/internal/model"
)

// AuthService is a mock type for the AuthService type
type AuthService struct {
	mock.Mock
}

// SignIn provides a mock function with given fields: ctx, email, password
func (_m *AuthService) SignIn(ctx context.Context, email string, password string) (model.Session, error) {
	ret := _m.Called(ctx, email, password)
	return ret.Get(0).(model.Session), ret.Error(1)
}

// Refresh provides a mock function with given fields: ctx, refreshToken
func (_m *AuthService) Refresh(ctx context.Context, refreshToken string) (model.Session, error) {
	ret := _m.Called(ctx, refreshToken)
	return ret.Get(0).(model.Session), ret.Error(1)
}

// SignOut provides a mock function with given fields: ctx, refreshToken
func (_m *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	ret := _m.Called(ctx, refreshToken)
	return ret.Error(0)
}

// NewAuthService creates a new instance of AuthService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
