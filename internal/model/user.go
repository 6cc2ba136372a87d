package model

import "time"

// User is an authenticated actor. PasswordHash is the argon2id encoded
// form and is never serialized.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserView is the subset of User safe to return to other users,
// e.g. when listing who a document is shared with.
type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// View strips credential fields from a User.
func (u *User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email}
}
