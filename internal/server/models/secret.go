package models

import "time"

// Secret is a stored vault entry. ContentEncrypted holds the AEAD ciphertext
// token; plaintext exists only transiently inside the service while handling
// a request by the owning user.
type Secret struct {
	ID               string
	Title            string
	ContentEncrypted string
	UserID           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
