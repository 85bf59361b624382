package mocks

import (
	context "context"

	model "github.com/dtroode/portfolio/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// IdentityVerifier is a mock type for the IdentityVerifier type
type IdentityVerifier struct {
	mock.Mock
}

// Verify provides a mock function with given fields: ctx, token
func (_m *IdentityVerifier) Verify(ctx context.Context, token string) (model.Principal, error) {
	ret := _m.Called(ctx, token)
	return ret.Get(0).(model.Principal), ret.Error(1)
}

// NewIdentityVerifier creates a new instance of IdentityVerifier. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewIdentityVerifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *IdentityVerifier {
	m := &IdentityVerifier{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
