package postgres

import (
	"context"
	"database/sql"

	"pdfvault/internal/model"
	"pdfvault/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const docColumns = `id, owner_id, filename, storage_path, size, content_type, link_token, created_at`

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.OwnerID,
		&d.Filename,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&d.LinkToken,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, owner_id, filename, storage_path, size, content_type, link_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + docColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.OwnerID,
		doc.Filename,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.LinkToken,
		doc.CreatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document and its shared-access set.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + docColumns + ` FROM documents WHERE id = $1`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadShares(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// FindByLinkToken resolves a public link token to its document. The
// shared-access set is loaded as well so callers get a complete record.
func (r *DocumentPostgres) FindByLinkToken(ctx context.Context, token string) (*model.Document, error) {
	const q = `SELECT ` + docColumns + ` FROM documents WHERE link_token = $1`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, token))
	if err != nil {
		return nil, err
	}
	if err := r.loadShares(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DocumentPostgres) loadShares(ctx context.Context, d *model.Document) error {
	const q = `SELECT user_id FROM document_shares WHERE document_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q, d.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	shared := make([]string, 0)
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return err
		}
		shared = append(shared, uid)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	d.SharedWith = shared
	return nil
}

// ListForUser returns documents owned by or shared with the user using
// LIMIT/OFFSET pagination and a total count. The shared-access set is
// not populated for list rows.
func (r *DocumentPostgres) ListForUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `
		SELECT COUNT(*) FROM documents
		WHERE owner_id = $1
		   OR id IN (SELECT document_id FROM document_shares WHERE user_id = $1)
	`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, userID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + docColumns + `
		FROM documents
		WHERE owner_id = $1
		   OR id IN (SELECT document_id FROM document_shares WHERE user_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, userID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a document by ID. Shares and comments cascade via
// foreign keys. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// AddShare inserts a membership into the shared-access set.
func (r *DocumentPostgres) AddShare(ctx context.Context, docID, userID string) error {
	const q = `
		INSERT INTO document_shares (document_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (document_id, user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, q, docID, userID)
	return err
}

// RemoveShare deletes a membership from the shared-access set. Deleting
// an absent membership is a no-op.
func (r *DocumentPostgres) RemoveShare(ctx context.Context, docID, userID string) error {
	const q = `DELETE FROM document_shares WHERE document_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, q, docID, userID)
	return err
}
