package repository

import (
	"context"

	"pdfvault/internal/model"
)

// UserRepository defines data access for user records.
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicateEmail on a unique
	// violation; the caller is expected to have normalized the email to
	// lower case already.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByEmail looks up a user by email, case-insensitively.
	// Returns sql.ErrNoRows if absent.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID returns a user by id. Returns sql.ErrNoRows if absent.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByIDs returns the users whose ids are in the given set,
	// in no particular order. Missing ids are silently skipped.
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
}
