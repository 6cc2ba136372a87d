package mocks

import (
	"context"

	"pdfvault/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, fullName, email, plainPassword string) (string, error) {
	args := m.Called(ctx, fullName, email, plainPassword)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, plainPassword string) (string, model.UserView, error) {
	args := m.Called(ctx, email, plainPassword)
	return args.String(0), args.Get(1).(model.UserView), args.Error(2)
}
