// Package models defines the persisted records managed by the server.
package models

import "time"

// User is a registered account. PasswordHash is a salted bcrypt hash and
// never leaves the service boundary.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
