package mocks

import (
	context "context"
	io "io"

	mock "github.com/stretchr/testify/mock"

	model "github.com/dtroode/portfolio/internal/model"
)

// ResumeService is a mock type for the ResumeService type
type ResumeService struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx
func (_m *ResumeService) Get(ctx context.Context) (model.ResumeDescriptor, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(model.ResumeDescriptor), ret.Error(1)
}

// Upload provides a mock function with given fields: ctx, uploader, upload
func (_m *ResumeService) Upload(ctx context.Context, uploader model.Principal, upload model.Upload) (model.ResumeDescriptor, error) {
	ret := _m.Called(ctx, uploader, upload)
	return ret.Get(0).(model.ResumeDescriptor), ret.Error(1)
}

// Download provides a mock function with given fields: ctx
func (_m *ResumeService) Download(ctx context.Context) (io.ReadCloser, model.ResumeDescriptor, error) {
	ret := _m.Called(ctx)
	var r0 io.ReadCloser
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(io.ReadCloser)
	}
	return r0, ret.Get(1).(model.ResumeDescriptor), ret.Error(2)
}

// NewResumeService creates a new instance of ResumeService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewResumeService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ResumeService {
	m := &ResumeService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
