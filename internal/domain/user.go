package domain

import "time"

// User represents an account that can obtain access tokens.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password"`
	CreatedAt    time.Time `db:"created_at"`
}

// Identity is the verified subject of an access token.
type Identity struct {
	ID int64 `json:"id"`
}
