package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pdfvault/internal/access"
	"pdfvault/internal/model"
	"pdfvault/internal/repository"
	"pdfvault/internal/storage"
)

// PresignExpiry is how long generated download URLs stay valid.
const PresignExpiry = 15 * time.Minute

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentDetail is a document together with its comments and a
// time-limited download URL.
type DocumentDetail struct {
	Document *model.Document `json:"document"`
	Comments []model.Comment `json:"comments"`
	URL      string          `json:"url"`
}

// DocumentService defines the use cases for handling documents. Every
// method takes the requester's user id and runs the access evaluator
// before touching storage; denied checks surface as ErrNotFound so the
// caller cannot distinguish them from a missing document.
type DocumentService interface {
	// Upload streams the PDF to object storage, then saves metadata
	// with the uploader as owner, an empty shared set and a freshly
	// minted public link token. Storage is rolled back if the DB save
	// fails, so a failed upload never leaves a document record.
	Upload(ctx context.Context, ownerID string, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error)

	// List returns documents the user owns or was granted, newest first.
	List(ctx context.Context, userID string, limit, offset int) (*DocumentListResult, error)

	// Get returns a document with its comments and a presigned URL.
	// Requires the View permission.
	Get(ctx context.Context, userID, docID string) (*DocumentDetail, error)

	// DownloadURL returns a presigned URL for the document's bytes.
	// Requires the Download permission.
	DownloadURL(ctx context.Context, userID, docID string) (string, error)

	// Delete removes the blob, then the record; shares and comments
	// cascade and the public link stops resolving. Owner only.
	Delete(ctx context.Context, userID, docID string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store    storage.Storage
	docs     repository.DocumentRepository
	comments repository.CommentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, comments repository.CommentRepository) DocumentService {
	return &documentService{store: store, docs: docs, comments: comments}
}

func (s *documentService) Upload(ctx context.Context, ownerID string, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error) {
	if ownerID == "" {
		return nil, ErrIDRequired
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	if contentType != "application/pdf" {
		return nil, ErrNotPDF
	}

	// Store under a generated key; the original filename only survives
	// as display metadata.
	key := filepath.ToSlash(filepath.Join("documents", uuid.New().String()+".pdf"))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Filename:    originalFilename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: contentType,
		LinkToken:   uuid.New().String(),
		SharedWith:  []string{},
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, userID string, limit, offset int) (*DocumentListResult, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.docs.ListForUser(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Get(ctx context.Context, userID, docID string) (*DocumentDetail, error) {
	doc, err := s.authorize(ctx, userID, docID, access.View)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByDocument(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	url, err := s.store.PresignGet(ctx, doc.StoragePath, PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign url: %w", err)
	}

	return &DocumentDetail{Document: doc, Comments: comments, URL: url}, nil
}

func (s *documentService) DownloadURL(ctx context.Context, userID, docID string) (string, error) {
	doc, err := s.authorize(ctx, userID, docID, access.Download)
	if err != nil {
		return "", err
	}
	url, err := s.store.PresignGet(ctx, doc.StoragePath, PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign url: %w", err)
	}
	return url, nil
}

func (s *documentService) Delete(ctx context.Context, userID, docID string) error {
	doc, err := s.authorize(ctx, userID, docID, access.Delete)
	if err != nil {
		return err
	}
	// Delete from storage first; if this fails, keep the record so the
	// blob reference is not lost.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	// Shares and comments cascade with the row; the public link stops
	// resolving at the same moment.
	return s.docs.Delete(ctx, docID)
}

// authorize loads the document and runs the access evaluator. A missing
// document and a denied check both come back as ErrNotFound.
func (s *documentService) authorize(ctx context.Context, userID, docID string, op access.Operation) (*model.Document, error) {
	if docID == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	if d := access.Evaluate(userID, doc, op); !d.Allowed {
		return nil, ErrNotFound
	}
	return doc, nil
}
