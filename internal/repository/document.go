package repository

import (
	"context"

	"pdfvault/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here; permission rules belong to internal/access.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID with the shared-access set
	// populated. Returns sql.ErrNoRows if absent.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindByLinkToken resolves a public link token to its document.
	// Returns sql.ErrNoRows if no document carries the token.
	FindByLinkToken(ctx context.Context, token string) (*model.Document, error)

	// ListForUser returns documents the user owns or has been granted
	// access to, newest first, with a total count.
	ListForUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.Document], error)

	// Delete removes a document row; shares and comments cascade at the
	// schema level. Returns nil if the row did not exist.
	Delete(ctx context.Context, id string) error

	// AddShare inserts userID into the document's shared-access set.
	AddShare(ctx context.Context, docID, userID string) error

	// RemoveShare deletes userID from the shared-access set. Removing
	// an absent membership is a no-op, not an error.
	RemoveShare(ctx context.Context, docID, userID string) error
}
