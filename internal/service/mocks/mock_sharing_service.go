package mocks

import (
	"context"

	"pdfvault/internal/model"
	"pdfvault/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockSharingService struct {
	mock.Mock
}

func (m *MockSharingService) Grant(ctx context.Context, requesterID, docID, targetEmail string) (model.UserView, error) {
	args := m.Called(ctx, requesterID, docID, targetEmail)
	return args.Get(0).(model.UserView), args.Error(1)
}

func (m *MockSharingService) Revoke(ctx context.Context, requesterID, docID, targetUserID string) error {
	args := m.Called(ctx, requesterID, docID, targetUserID)
	return args.Error(0)
}

func (m *MockSharingService) ListUsers(ctx context.Context, requesterID, docID string) ([]model.UserView, error) {
	args := m.Called(ctx, requesterID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserView), args.Error(1)
}

func (m *MockSharingService) ResolveLink(ctx context.Context, linkToken string) (*service.SharedDocument, error) {
	args := m.Called(ctx, linkToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SharedDocument), args.Error(1)
}
