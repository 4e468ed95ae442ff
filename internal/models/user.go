package models

import (
	"time"

	"github.com/avicente/recipebook-be/internal/auth"
)

// User represents a user account in the system.
type User struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	PasswordHash auth.Secret `json:"-"` // Never expose this to the client
	Bio          string      `json:"bio"`
	ImageURL     string      `json:"imageUrl"`
	CreatedAt    time.Time   `json:"createdAt"`
}
