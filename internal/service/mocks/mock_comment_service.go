package mocks

import (
	"context"

	"pdfvault/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Add(ctx context.Context, userID, docID, body string) (*model.Comment, error) {
	args := m.Called(ctx, userID, docID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}
