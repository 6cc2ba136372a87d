package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdfvault/internal/auth/password"
	"pdfvault/internal/auth/token"
	"pdfvault/internal/model"
	"pdfvault/internal/repository"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService defines the registration and login use cases.
type AuthService interface {
	// Register validates input, hashes the password and creates the
	// user. Emails are normalized to lower case; uniqueness is
	// case-insensitive.
	Register(ctx context.Context, fullName, email, plainPassword string) (string, error)

	// Login verifies the credentials and issues a session token.
	// Unknown email and wrong password fail identically.
	Login(ctx context.Context, email, plainPassword string) (string, model.UserView, error)
}

type authService struct {
	users          repository.UserRepository
	hasher         *password.Hasher
	tokens         *token.Manager
	minPasswordLen int
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, hasher *password.Hasher, tokens *token.Manager, minPasswordLen int) AuthService {
	return &authService{
		users:          users,
		hasher:         hasher,
		tokens:         tokens,
		minPasswordLen: minPasswordLen,
	}
}

func (s *authService) Register(ctx context.Context, fullName, email, plainPassword string) (string, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	if fullName == "" || email == "" || plainPassword == "" {
		return "", ErrMissingFields
	}
	if !emailRe.MatchString(email) {
		return "", ErrInvalidEmail
	}
	if len(plainPassword) < s.minPasswordLen {
		return "", ErrWeakPassword
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:           uuid.New().String(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("create user: %w", err)
	}
	return stored.ID, nil
}

func (s *authService) Login(ctx context.Context, email, plainPassword string) (string, model.UserView, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plainPassword == "" {
		return "", model.UserView{}, ErrInvalidCredentials
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.UserView{}, ErrInvalidCredentials
		}
		return "", model.UserView{}, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(plainPassword, u.PasswordHash)
	if err != nil {
		return "", model.UserView{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", model.UserView{}, ErrInvalidCredentials
	}

	raw, _, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", model.UserView{}, fmt.Errorf("issue token: %w", err)
	}
	return raw, u.View(), nil
}
