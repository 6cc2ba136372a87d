package service

import "errors"

// Sentinel errors surfaced to the HTTP layer. Handlers map them to
// status codes with errors.Is; anything not listed here is treated as
// an internal failure and never leaked to the caller.
var (
	// ErrIDRequired signals a missing resource id.
	ErrIDRequired = errors.New("id is required")
	// ErrReaderNil signals a nil upload body.
	ErrReaderNil = errors.New("reader is nil")

	// ErrMissingFields signals empty required registration fields.
	ErrMissingFields = errors.New("full name, email and password are required")
	// ErrInvalidEmail signals an email that fails format validation.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword signals a password below the minimum length.
	ErrWeakPassword = errors.New("password does not meet the minimum length")
	// ErrEmailTaken signals a registration with an already-used email.
	ErrEmailTaken = errors.New("a user with this email already exists")
	// ErrInvalidCredentials is returned for unknown email and wrong
	// password alike, so login failures reveal nothing.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotFound deliberately conflates "does not exist" with
	// "exists but forbidden": a caller without access must not be able
	// to tell whether a document exists.
	ErrNotFound = errors.New("document not found or access denied")
	// ErrNotPDF signals an upload that is not an application/pdf.
	ErrNotPDF = errors.New("only PDF files are allowed")

	// ErrUserNotFound signals a grant target email with no account.
	ErrUserNotFound = errors.New("user with this email not found")
	// ErrSelfGrant signals an owner granting access to themselves.
	ErrSelfGrant = errors.New("owner already has access to this document")
	// ErrAlreadyShared signals a duplicate grant.
	ErrAlreadyShared = errors.New("user already has access to this document")

	// ErrCommentRequired signals an empty comment body.
	ErrCommentRequired = errors.New("comment is required")
)
