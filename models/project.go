package models

import (
	"time"
)

// Project represents a user-owned transcript project in the database.
type Project struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"` // Use a pointer for nullable TEXT fields
	CurrentVersionID string    `json:"current_version_id"`
	CreatedAt        time.Time `json:"created_at"`
}
