package models

import "time"

// User is the full user record as stored. PasswordHash never leaves the
// storage/service layers; JSON marshalling drops it.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	JoinedAt     time.Time `json:"join_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// PublicUser is the projection of a user safe to embed in responses and
// message listings.
type PublicUser struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Public returns the exposable projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}
