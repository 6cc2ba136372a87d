package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"pdfvault/internal/model"
	"pdfvault/internal/repository"
	repoMocks "pdfvault/internal/repository/mocks"
	"pdfvault/internal/storage"
	storeMocks "pdfvault/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ownedDoc() *model.Document {
	return &model.Document{
		ID:          "doc-1",
		OwnerID:     "owner",
		Filename:    "report.pdf",
		StoragePath: "documents/blob.pdf",
		ContentType: "application/pdf",
		LinkToken:   "link-token",
		SharedWith:  []string{"friend"},
	}
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		ownerID     string
		filename    string
		contentType string
		size        int64
		setupMocks  func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader
		wantErr     error
		wantErrMsg  string
	}{
		{
			name:        "happy path mints a link token",
			ownerID:     "owner",
			filename:    "report.pdf",
			contentType: "application/pdf",
			size:        11,
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello world")
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf")
				}), r, storage.PutObjectOptions{
					Size:        11,
					ContentType: "application/pdf",
					Metadata:    map[string]string{"original-filename": "report.pdf"},
				}).Return(storage.ObjectInfo{Key: "documents/blob.pdf", Size: 11}, nil)

				mDocs.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.OwnerID == "owner" &&
						doc.Filename == "report.pdf" &&
						doc.StoragePath == "documents/blob.pdf" &&
						doc.LinkToken != "" &&
						len(doc.SharedWith) == 0
				})).Return(&model.Document{ID: "gen-id", LinkToken: "minted"}, nil)

				return r
			},
		},
		{
			name:        "missing owner id",
			filename:    "report.pdf",
			contentType: "application/pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader {
				return strings.NewReader("hello")
			},
			wantErr: ErrIDRequired,
		},
		{
			name:        "nil reader",
			ownerID:     "owner",
			filename:    "report.pdf",
			contentType: "application/pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:        "rejects non-pdf",
			ownerID:     "owner",
			filename:    "notes.txt",
			contentType: "text/plain",
			size:        5,
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader {
				return strings.NewReader("hello")
			},
			wantErr: ErrNotPDF,
		},
		{
			name:        "storage error",
			ownerID:     "owner",
			filename:    "report.pdf",
			contentType: "application/pdf",
			size:        5,
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:        "db error rolls back the blob",
			ownerID:     "owner",
			filename:    "report.pdf",
			contentType: "application/pdf",
			size:        5,
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mDocs.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:        "db error with failed rollback",
			ownerID:     "owner",
			filename:    "report.pdf",
			contentType: "application/pdf",
			size:        5,
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mDocs.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mDocs := new(repoMocks.MockDocumentRepository)
			mComments := new(repoMocks.MockCommentRepository)
			svc := NewDocumentService(mStore, mDocs, mComments)

			r := tt.setupMocks(mStore, mDocs)

			doc, err := svc.Upload(ctx, tt.ownerID, r, tt.filename, tt.contentType, tt.size)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
			}

			mStore.AssertExpectations(t)
			mDocs.AssertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("ListForUser", ctx, "user-1", repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Document]{
				Items: []model.Document{{ID: "1"}, {ID: "2"}},
				Total: 2,
			}, nil)

		svc := NewDocumentService(nil, mDocs, nil)

		res, err := svc.List(ctx, "user-1", 10, 0)
		require.NoError(t, err)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, 2, res.Total)
		mDocs.AssertExpectations(t)
	})

	t.Run("non-positive limit and offset fall back to defaults", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("ListForUser", ctx, "user-1", repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Document]{Items: []model.Document{}, Total: 0}, nil)

		svc := NewDocumentService(nil, mDocs, nil)

		_, err := svc.List(ctx, "user-1", 0, -1)
		assert.NoError(t, err)
		mDocs.AssertExpectations(t)
	})

	t.Run("missing user id", func(t *testing.T) {
		svc := NewDocumentService(nil, new(repoMocks.MockDocumentRepository), nil)
		_, err := svc.List(ctx, "", 10, 0)
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("repository error", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("ListForUser", ctx, "user-1", mock.Anything).Return(nil, errors.New("db fail"))

		svc := NewDocumentService(nil, mDocs, nil)

		_, err := svc.List(ctx, "user-1", 10, 0)
		assert.Error(t, err)
	})
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("owner gets comments and a presigned url", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockDocumentRepository)
		mComments := new(repoMocks.MockCommentRepository)

		mDocs.On("FindByID", ctx, "doc-1").Return(ownedDoc(), nil)
		mComments.On("ListByDocument", ctx, "doc-1").
			Return([]model.Comment{{ID: "c1", Body: "nice"}}, nil)
		mStore.On("PresignGet", ctx, "documents/blob.pdf", PresignExpiry).
			Return("https://signed.example/doc", nil)

		svc := NewDocumentService(mStore, mDocs, mComments)

		detail, err := svc.Get(ctx, "owner", "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "doc-1", detail.Document.ID)
		assert.Len(t, detail.Comments, 1)
		assert.Equal(t, "https://signed.example/doc", detail.URL)
	})

	t.Run("shared user may view", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockDocumentRepository)
		mComments := new(repoMocks.MockCommentRepository)

		mDocs.On("FindByID", ctx, "doc-1").Return(ownedDoc(), nil)
		mComments.On("ListByDocument", ctx, "doc-1").Return([]model.Comment{}, nil)
		mStore.On("PresignGet", ctx, mock.Anything, PresignExpiry).Return("url", nil)

		svc := NewDocumentService(mStore, mDocs, mComments)

		_, err := svc.Get(ctx, "friend", "doc-1")
		assert.NoError(t, err)
	})

	t.Run("stranger is told not found", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "doc-1").Return(ownedDoc(), nil)

		svc := NewDocumentService(nil, mDocs, nil)

		_, err := svc.Get(ctx, "stranger", "doc-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing document", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := NewDocumentService(nil, mDocs, nil)

		_, err := svc.Get(ctx, "owner", "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_DownloadURL(t *testing.T) {
	ctx := context.Background()

	t.Run("shared user may download", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "doc-1").Return(ownedDoc(), nil)
		mStore.On("PresignGet", ctx, "documents/blob.pdf", PresignExpiry).Return("url", nil)

		svc := NewDocumentService(mStore, mDocs, nil)

		url, err := svc.DownloadURL(ctx, "friend", "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "url", url)
	})

	t.Run("stranger denied as not found", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "doc-1").Return(ownedDoc(), nil)

		svc := NewDocumentService(nil, mDocs, nil)

		_, err := svc.DownloadURL(ctx, "stranger", "doc-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes blob then record", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "doc-1").Return(ownedDoc(), nil)
		mStore.On("Delete", ctx, "documents/blob.pdf").Return(nil)
		mDocs.On("Delete", ctx, "doc-1").Return(nil)

		svc := NewDocumentService(mStore, mDocs, nil)

		assert.NoError(t, svc.Delete(ctx, "owner", "doc-1"))
		mStore.AssertExpectations(t)
		mDocs.AssertExpectations(t)
	})

	t.Run("shared user may not delete", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "doc-1").Return(ownedDoc(), nil)

		svc := NewDocumentService(nil, mDocs, nil)

		assert.ErrorIs(t, svc.Delete(ctx, "friend", "doc-1"), ErrNotFound)
	})

	t.Run("missing document", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		svc := NewDocumentService(nil, mDocs, nil)

		assert.ErrorIs(t, svc.Delete(ctx, "owner", "missing"), ErrNotFound)
	})

	t.Run("storage error keeps the record", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockDocumentRepository)
		mDocs.On("FindByID", ctx, "doc-1").Return(ownedDoc(), nil)
		mStore.On("Delete", ctx, "documents/blob.pdf").Return(errors.New("storage fail"))

		svc := NewDocumentService(mStore, mDocs, nil)

		err := svc.Delete(ctx, "owner", "doc-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "delete storage: storage fail")
		mDocs.AssertNotCalled(t, "Delete", ctx, "doc-1")
	})
}
