package model

import "time"

// Comment is an append-only note attached to a document.
//
// AuthorEmail is denormalized from the users table at write time on
// purpose: a comment keeps showing the email its author had when the
// comment was made. Do not "fix" this to a live join.
type Comment struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	AuthorID    string    `json:"-"`
	AuthorEmail string    `json:"email"`
	Body        string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}
