package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ticketportal/internal/zendesk"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) UploadFile(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, filename, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) CreateRequest(ctx context.Context, r *zendesk.Request) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}
