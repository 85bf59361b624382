package mocks

import (
	time "time"

	model "github.com/dtroode/portfolio/internal/model"
	mock "github.com/stretchr/testify/mock"

	uuid "github.com/google/uuid"
)

// TokenManager is a mock type for the TokenManager type
type TokenManager struct {
	mock.Mock
}

// GenerateAccessToken provides a mock function with given fields: principal
func (_m *TokenManager) GenerateAccessToken(principal model.Principal) (string, time.Time, error) {
	ret := _m.Called(principal)
	return ret.String(0), ret.Get(1).(time.Time), ret.Error(2)
}

// GenerateRefreshToken provides a mock function with given fields: userID
func (_m *TokenManager) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	ret := _m.Called(userID)
	return ret.String(0), ret.String(1), ret.Error(2)
}

// ParseAccessToken provides a mock function with given fields: token
func (_m *TokenManager) ParseAccessToken(token string) (model.Principal, error) {
	ret := _m.Called(token)
	return ret.Get(0).(model.Principal), ret.Error(1)
}

// ParseRefreshToken provides a mock function with given fields: token
func (_m *TokenManager) ParseRefreshToken(token string) (uuid.UUID, string, error) {
	ret := _m.Called(token)
	return ret.Get(0).(uuid.UUID), ret.String(1), ret.Error(2)
}

// NewTokenManager creates a new instance of TokenManager. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTokenManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenManager {
	m := &TokenManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
