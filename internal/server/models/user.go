// Package models defines the persistent records of the auth service.
package models

// MaxUsernameLength mirrors the users.username column width.
const MaxUsernameLength = 32

// User is a row of the users table. Username is the primary key;
// PasswordHash is the fixed-length hex digest produced by auth.HashPassword.
type User struct {
	Username     string
	PasswordHash string
}
