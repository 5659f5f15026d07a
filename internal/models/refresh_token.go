package models

import (
	"time"
)

// RefreshToken represents one issued refresh secret.
//
// Only the SHA-256 fingerprint of the raw secret is ever stored. Once Revoked
// is set it is never cleared: a secret is honored at most once between
// issuance and expiry, use, or logout.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TokenHash string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	UserID    string    `gorm:"size:36;index;not null" json:"userId"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	CreatedAt time.Time `json:"createdAt"`

	// Define the relationship to User
	User User `gorm:"foreignKey:UserID" json:"-"`
}
