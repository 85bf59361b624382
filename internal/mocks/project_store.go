package mocks

import (
	context "context"

	model "github.com/dtroode/portfolio/internal/model"
	mock "github.com/stretchr/testify/mock"

	uuid "github.com/google/uuid"
)

// ProjectStore is a mock type for the ProjectStore type
type ProjectStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, project
func (_m *ProjectStore) Create(ctx context.Context, project model.Project) (model.Project, error) {
	ret := _m.Called(ctx, project)
	if fn, ok := ret.Get(0).(func(context.Context, model.Project) model.Project); ok {
		return fn(ctx, project), ret.Error(1)
	}
	return ret.Get(0).(model.Project), ret.Error(1)
}

// List provides a mock function with given fields: ctx
func (_m *ProjectStore) List(ctx context.Context) ([]model.Project, error) {
	ret := _m.Called(ctx)
	var r0 []model.Project
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Project)
	}
	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *ProjectStore) GetByID(ctx context.Context, id uuid.UUID) (model.Project, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Project), ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *ProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewProjectStore creates a new instance of ProjectStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewProjectStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProjectStore {
	m := &ProjectStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
