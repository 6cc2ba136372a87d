package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pdfvault/internal/access"
	"pdfvault/internal/model"
	"pdfvault/internal/repository"
	"pdfvault/internal/storage"
)

// SharedDocument is the public view of a document resolved through its
// link token. It intentionally carries no owner or sharing information.
type SharedDocument struct {
	ID       string          `json:"id"`
	Filename string          `json:"filename"`
	URL      string          `json:"url"`
	Comments []model.Comment `json:"comments"`
}

// SharingService manages the shared-access set and the public link.
// Grant, Revoke and ListUsers require the ManageSharing permission,
// which only the owner holds; a non-owner gets ErrNotFound, never a
// hint that the document exists.
type SharingService interface {
	// Grant adds the user registered under targetEmail to the shared
	// set. Fails with ErrUserNotFound for an unknown email, ErrSelfGrant
	// when the target is the owner and ErrAlreadyShared on a duplicate;
	// the shared set is unchanged on any failure.
	Grant(ctx context.Context, requesterID, docID, targetEmail string) (model.UserView, error)

	// Revoke removes targetUserID from the shared set. Revoking a user
	// who was never granted is a no-op success.
	Revoke(ctx context.Context, requesterID, docID, targetUserID string) error

	// ListUsers returns the users currently in the shared set.
	ListUsers(ctx context.Context, requesterID, docID string) ([]model.UserView, error)

	// ResolveLink turns a public link token into a shared view with a
	// presigned download URL. It neither requires nor accepts an
	// identity: possession of the token is the whole authorization.
	ResolveLink(ctx context.Context, linkToken string) (*SharedDocument, error)
}

type sharingService struct {
	docs     repository.DocumentRepository
	users    repository.UserRepository
	comments repository.CommentRepository
	store    storage.Storage
}

// NewSharingService constructs a new SharingService.
func NewSharingService(docs repository.DocumentRepository, users repository.UserRepository, comments repository.CommentRepository, store storage.Storage) SharingService {
	return &sharingService{docs: docs, users: users, comments: comments, store: store}
}

func (s *sharingService) Grant(ctx context.Context, requesterID, docID, targetEmail string) (model.UserView, error) {
	targetEmail = strings.ToLower(strings.TrimSpace(targetEmail))
	if targetEmail == "" {
		return model.UserView{}, ErrInvalidEmail
	}

	doc, err := s.authorizeManage(ctx, requesterID, docID)
	if err != nil {
		return model.UserView{}, err
	}

	target, err := s.users.FindByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserView{}, ErrUserNotFound
		}
		return model.UserView{}, fmt.Errorf("find target user: %w", err)
	}

	if target.ID == doc.OwnerID {
		return model.UserView{}, ErrSelfGrant
	}
	if doc.IsSharedWith(target.ID) {
		return model.UserView{}, ErrAlreadyShared
	}

	if err := s.docs.AddShare(ctx, docID, target.ID); err != nil {
		return model.UserView{}, fmt.Errorf("add share: %w", err)
	}
	return target.View(), nil
}

func (s *sharingService) Revoke(ctx context.Context, requesterID, docID, targetUserID string) error {
	if targetUserID == "" {
		return ErrIDRequired
	}
	if _, err := s.authorizeManage(ctx, requesterID, docID); err != nil {
		return err
	}
	// Idempotent: removing an absent membership succeeds.
	if err := s.docs.RemoveShare(ctx, docID, targetUserID); err != nil {
		return fmt.Errorf("remove share: %w", err)
	}
	return nil
}

func (s *sharingService) ListUsers(ctx context.Context, requesterID, docID string) ([]model.UserView, error) {
	doc, err := s.authorizeManage(ctx, requesterID, docID)
	if err != nil {
		return nil, err
	}

	users, err := s.users.FindByIDs(ctx, doc.SharedWith)
	if err != nil {
		return nil, fmt.Errorf("find shared users: %w", err)
	}

	views := make([]model.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}
	return views, nil
}

func (s *sharingService) ResolveLink(ctx context.Context, linkToken string) (*SharedDocument, error) {
	if strings.TrimSpace(linkToken) == "" {
		return nil, ErrNotFound
	}

	doc, err := s.docs.FindByLinkToken(ctx, linkToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find by link token: %w", err)
	}

	url, err := s.store.PresignGet(ctx, doc.StoragePath, PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign url: %w", err)
	}

	// Link holders have the View capability, which includes reading the
	// document's comments.
	comments, err := s.comments.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return &SharedDocument{
		ID:       doc.ID,
		Filename: doc.Filename,
		URL:      url,
		Comments: comments,
	}, nil
}

// authorizeManage loads a document and requires the ManageSharing
// permission, conflating missing and forbidden into ErrNotFound.
func (s *sharingService) authorizeManage(ctx context.Context, requesterID, docID string) (*model.Document, error) {
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
	if d := access.Evaluate(requesterID, doc, access.ManageSharing); !d.Allowed {
		return nil, ErrNotFound
	}
	return doc, nil
}
