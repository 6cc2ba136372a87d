package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"pdfvault/internal/model"
	repoMocks "pdfvault/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("shared user comments with a snapshotted email", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mUsers := new(repoMocks.MockUserRepository)
		mComments := new(repoMocks.MockCommentRepository)

		mDocs.On("FindByID", ctx, "doc-1").Return(ownedDoc(), nil)
		mUsers.On("FindByID", ctx, "friend").
			Return(&model.User{ID: "friend", Email: "friend@example.com"}, nil)
		mComments.On("Create", ctx, mock.MatchedBy(func(c *model.Comment) bool {
			return c.DocumentID == "doc-1" &&
				c.AuthorID == "friend" &&
				c.AuthorEmail == "friend@example.com" &&
				c.Body == "looks good"
		})).Return(&model.Comment{ID: "c1", Body: "looks good"}, nil)

		svc := NewCommentService(mDocs, mUsers, mComments)

		c, err := svc.Add(ctx, "friend", "doc-1", "  looks good  ")
		require.NoError(t, err)
		assert.Equal(t, "c1", c.ID)
		mComments.AssertExpectations(t)
	})

	t.Run("owner may comment", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mUsers := new(repoMocks.MockUserRepository)
		mComments := new(repoMocks.MockCommentRepository)

		mDocs.On("FindByID", ctx, "doc-1").Return(ownedDoc(), nil)
		mUsers.On("FindByID", ctx, "owner").
			Return(&model.User{ID: "owner", Email: "owner@example.com"}, nil)
		mComments.On("Create", ctx, mock.Anything).
			Return(&model.Comment{ID: "c2"}, nil)

		svc := NewCommentService(mDocs, mUsers, mComments)

		_, err := svc.Add(ctx, "owner", "doc-1", "mine")
		assert.NoError(t, err)
	})

	t.Run("empty body after trimming", func(t *testing.T) {
		svc := NewCommentService(nil, nil, nil)
		_, err := svc.Add(ctx, "friend", "doc-1", "   ")
		assert.ErrorIs(t, err, ErrCommentRequired)
	})

	t.Run("stranger is told not found", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "doc-1").Return(ownedDoc(), nil)

		svc := NewCommentService(mDocs, nil, nil)

		_, err := svc.Add(ctx, "stranger", "doc-1", "hi")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("anonymous requester is denied", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "doc-1").Return(ownedDoc(), nil)

		svc := NewCommentService(mDocs, nil, nil)

		_, err := svc.Add(ctx, "", "doc-1", "hi")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing document", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := NewCommentService(mDocs, nil, nil)

		_, err := svc.Add(ctx, "friend", "missing", "hi")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("create error", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mUsers := new(repoMocks.MockUserRepository)
		mComments := new(repoMocks.MockCommentRepository)

		mDocs.On("FindByID", ctx, "doc-1").Return(ownedDoc(), nil)
		mUsers.On("FindByID", ctx, "friend").
			Return(&model.User{ID: "friend", Email: "friend@example.com"}, nil)
		mComments.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		svc := NewCommentService(mDocs, mUsers, mComments)

		_, err := svc.Add(ctx, "friend", "doc-1", "hi")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "create comment: db fail")
	})
}
