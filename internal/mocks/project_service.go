package mocks

import (
	context "context"
	io "io"

	uuid "github.com/google/uuid"
	mock "github.com/stretchr/testify/mock"

	model "github.com/dtroode/portfolio/internal/model"
)

// ProjectService is a mock type for the ProjectService type
type ProjectService struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx
func (_m *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	ret := _m.Called(ctx)
	var r0 []model.Project
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Project)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, params
func (_m *ProjectService) Create(ctx context.Context, params model.CreateProjectParams) (model.Project, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(model.Project), ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, id
func (_m *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// Image provides a mock function with given fields: ctx, id
func (_m *ProjectService) Image(ctx context.Context, id uuid.UUID) (io.ReadCloser, model.Project, error) {
	ret := _m.Called(ctx, id)
	var r0 io.ReadCloser
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(io.ReadCloser)
	}
	return r0, ret.Get(1).(model.Project), ret.Error(2)
}

// NewProjectService creates a new instance of ProjectService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewProjectService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProjectService {
	m := &ProjectService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
