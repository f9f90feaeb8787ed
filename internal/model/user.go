package model

import "time"

// User is a registered customer or administrator.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// LoginRequest carries credentials for session issuance.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
