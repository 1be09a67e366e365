package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ticketportal/internal/model"
	"ticketportal/internal/service"
)

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) SubmitAVSupport(ctx context.Context, sub *model.AVSupportSubmission) (*service.Receipt, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Receipt), args.Error(1)
}

func (m *MockSubmissionService) SubmitDigitalSignage(ctx context.Context, sub *model.SignageSubmission) (*service.Receipt, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Receipt), args.Error(1)
}
