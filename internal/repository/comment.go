package repository

import (
	"context"

	"pdfvault/internal/model"
)

// CommentRepository defines data access for comments. Comments are
// append-only: there is no update or single delete, only the cascade
// that follows document deletion.
type CommentRepository interface {
	// Create inserts a new comment and returns the stored row.
	Create(ctx context.Context, c *model.Comment) (*model.Comment, error)

	// ListByDocument returns the document's comments, newest first.
	ListByDocument(ctx context.Context, docID string) ([]model.Comment, error)
}
