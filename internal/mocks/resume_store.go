package mocks

import (
	context "context"

	model "github.com/dtroode/portfolio/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// ResumeStore is a mock type for the ResumeStore type
type ResumeStore struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx
func (_m *ResumeStore) Get(ctx context.Context) (model.Resume, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(model.Resume), ret.Error(1)
}

// Replace provides a mock function with given fields: ctx, resume
func (_m *ResumeStore) Replace(ctx context.Context, resume model.Resume) (model.Resume, bool, error) {
	ret := _m.Called(ctx, resume)
	return ret.Get(0).(model.Resume), ret.Bool(1), ret.Error(2)
}

// NewResumeStore creates a new instance of ResumeStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewResumeStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *ResumeStore {
	m := &ResumeStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
