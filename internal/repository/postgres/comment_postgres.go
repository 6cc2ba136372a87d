package postgres

import (
	"context"
	"database/sql"

	"pdfvault/internal/model"
	"pdfvault/internal/repository"
)

// CommentPostgres is a PostgreSQL implementation of repository.CommentRepository.
type CommentPostgres struct {
	db *sql.DB
}

// NewCommentPostgres creates a new CommentPostgres repository.
func NewCommentPostgres(db *sql.DB) *CommentPostgres {
	return &CommentPostgres{db: db}
}

var _ repository.CommentRepository = (*CommentPostgres)(nil)

const commentColumns = `id, document_id, user_id, email, body, created_at`

// Create inserts a new comment row and returns the stored record.
func (r *CommentPostgres) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	const q = `
		INSERT INTO comments (id, document_id, user_id, email, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + commentColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.DocumentID,
		c.AuthorID,
		c.AuthorEmail,
		c.Body,
		c.CreatedAt,
	)
	var out model.Comment
	if err := row.Scan(
		&out.ID,
		&out.DocumentID,
		&out.AuthorID,
		&out.AuthorEmail,
		&out.Body,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByDocument returns the document's comments, newest first.
func (r *CommentPostgres) ListByDocument(ctx context.Context, docID string) ([]model.Comment, error) {
	const q = `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE document_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID,
			&c.DocumentID,
			&c.AuthorID,
			&c.AuthorEmail,
			&c.Body,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}
