package auth

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"todo-app-server/internal/models"
)

// RefreshTokenStore persists refresh-token records. Every method takes the
// *gorm.DB it should run on, so callers can pass either the plain handle or
// an open transaction.
type RefreshTokenStore struct{}

// Insert creates a new non-revoked record for the given fingerprint.
func (RefreshTokenStore) Insert(db *gorm.DB, userID, tokenHash string, expiresAt time.Time) (*models.RefreshToken, error) {
	record := &models.RefreshToken{
		TokenHash: tokenHash,
		UserID:    userID,
		ExpiresAt: expiresAt,
		Revoked:   false,
	}
	if err := db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return record, nil
}

// FindForUpdate looks up a record by fingerprint under an exclusive row lock
// held until the enclosing transaction ends, serializing concurrent rotation
// attempts on the same secret. Returns gorm.ErrRecordNotFound when absent.
func (RefreshTokenStore) FindForUpdate(tx *gorm.DB, tokenHash string) (*models.RefreshToken, error) {
	q := tx
	// sqlite has a single writer and no row locks; the FOR UPDATE clause is
	// a syntax error there. The conditional revoke keeps rotation safe anyway.
	if tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var record models.RefreshToken
	if err := q.Where("token_hash = ?", tokenHash).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Revoke marks a single record as revoked regardless of its current state.
func (RefreshTokenStore) Revoke(db *gorm.DB, id uint) error {
	if err := db.Model(&models.RefreshToken{}).Where("id = ?", id).Update("revoked", true).Error; err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RevokeIfActive marks a record as revoked only if it is not revoked yet,
// and reports whether this call was the one that flipped it. A false result
// means a concurrent rotation won the race.
func (RefreshTokenStore) RevokeIfActive(db *gorm.DB, id uint) (bool, error) {
	result := db.Model(&models.RefreshToken{}).
		Where("id = ? AND revoked = ?", id, false).
		Update("revoked", true)
	if result.Error != nil {
		return false, fmt.Errorf("failed to revoke refresh token: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// RevokeAllForUser revokes every record owned by the user. Idempotent.
func (RefreshTokenStore) RevokeAllForUser(db *gorm.DB, userID string) error {
	if err := db.Model(&models.RefreshToken{}).Where("user_id = ?", userID).Update("revoked", true).Error; err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}
