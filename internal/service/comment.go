package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdfvault/internal/access"
	"pdfvault/internal/model"
	"pdfvault/internal/repository"
)

// CommentService defines the comment use cases. Comments are
// append-only and only permitted viewers (owner or shared users, never
// anonymous link holders) may add them.
type CommentService interface {
	// Add attaches a comment to the document on behalf of userID. The
	// author's email is snapshotted from the users table at write time.
	Add(ctx context.Context, userID, docID, body string) (*model.Comment, error)
}

type commentService struct {
	docs     repository.DocumentRepository
	users    repository.UserRepository
	comments repository.CommentRepository
}

// NewCommentService constructs a new CommentService.
func NewCommentService(docs repository.DocumentRepository, users repository.UserRepository, comments repository.CommentRepository) CommentService {
	return &commentService{docs: docs, users: users, comments: comments}
}

func (s *commentService) Add(ctx context.Context, userID, docID, body string) (*model.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrCommentRequired
	}
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
	if d := access.Evaluate(userID, doc, access.Comment); !d.Allowed {
		return nil, ErrNotFound
	}

	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	c := &model.Comment{
		ID:          uuid.New().String(),
		DocumentID:  docID,
		AuthorID:    author.ID,
		AuthorEmail: author.Email,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.comments.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return stored, nil
}
