// Package models defines server-side data models persisted in the database.
package models

import "time"

type User struct {
	ID             string
	Email          string
	PasswordDigest string
	CreatedAt      time.Time
}

// UserView is the outward shape of a user. The password digest never
// leaves the service layer.
type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) View() *UserView {
	return &UserView{ID: u.ID, Email: u.Email}
}
