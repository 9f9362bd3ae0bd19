// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a stored credential. PasswordHash is a bcrypt digest and is never
// serialised to clients.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// UserSummary is the minimal user view returned at login.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email}
}
