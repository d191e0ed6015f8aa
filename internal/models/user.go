package models

import "time"

// User represents an authenticated user in the system.
// Users are created on first successful identity-provider login; email and
// name are immutable after creation, only the avatar URL is refreshed.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Email     string    `gorm:"uniqueIndex;size:150;not null" json:"email"`
	Name      string    `gorm:"size:150;not null" json:"nombre"`
	AvatarURL string    `gorm:"size:300" json:"foto_url,omitempty"`
}
