package models

import "time"

// Profile holds the API credential pair of one owner. SecretHash is a bcrypt
// hash; the plain secret is never stored.
type Profile struct {
	Owner      string
	Token      string
	SecretHash []byte
	CreatedAt  time.Time
}
