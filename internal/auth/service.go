// Package auth implements the refresh-token lifecycle: issuance,
// rotation-on-use, replay detection, and revocation.
package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"todo-app-server/internal/token"
)

// TokenPair is the result of issuing or rotating a session: a signed access
// token plus the raw refresh secret. The raw secret exists only in this
// value and on the client; the store keeps its fingerprint.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service coordinates the refresh-token store and the access-token issuer.
type Service struct {
	db         *gorm.DB
	issuer     *token.Issuer
	store      RefreshTokenStore
	refreshTTL time.Duration
}

// NewService creates a Service backed by the given database handle.
func NewService(db *gorm.DB, issuer *token.Issuer, refreshTTL time.Duration) *Service {
	return &Service{db: db, issuer: issuer, refreshTTL: refreshTTL}
}

// RefreshTTL returns the configured refresh-token lifetime.
func (s *Service) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// issuePair generates a fresh refresh secret, stores its fingerprint, and
// signs a matching access token, all against the given handle.
func (s *Service) issuePair(db *gorm.DB, userID string) (*TokenPair, error) {
	rawSecret, err := token.NewRefreshSecret()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.refreshTTL)
	if _, err := s.store.Insert(db, userID, token.HashSecret(rawSecret), expiresAt); err != nil {
		return nil, err
	}

	accessToken, err := s.issuer.Issue(userID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: rawSecret}, nil
}

// Signup issues the first token pair for a newly created user.
func (s *Service) Signup(userID string) (*TokenPair, error) {
	return s.issuePair(s.db, userID)
}

// Login invalidates every outstanding session for the user, then issues a
// new pair. Revoke and issue commit together.
func (s *Service) Login(userID string) (*TokenPair, error) {
	var pair *TokenPair
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.store.RevokeAllForUser(tx, userID); err != nil {
			return err
		}
		var err error
		pair, err = s.issuePair(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes every refresh token owned by the user. Calling it again is
// a no-op that still succeeds.
func (s *Service) Logout(userID string) error {
	return s.store.RevokeAllForUser(s.db, userID)
}

// Rotate consumes a raw refresh secret and, if it is valid, atomically
// revokes its record and issues a replacement pair for the same user.
//
// The whole protocol runs in one transaction: lock the row by fingerprint,
// reject revoked records (replay of an already-used secret), revoke-and-keep
// expired records, flip the live record with a conditional update so exactly
// one of two racing requests wins, insert the successor record, and sign the
// new access token. Any failure past the expiry check rolls everything back.
func (s *Service) Rotate(rawSecret string) (*TokenPair, error) {
	tokenHash := token.HashSecret(rawSecret)

	var pair *TokenPair
	var expired bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		record, err := s.store.FindForUpdate(tx, tokenHash)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Unknown fingerprint. Indistinguishable from "already used".
				return ErrUnauthenticated
			}
			return err
		}

		if record.Revoked {
			// Replay: the secret was already consumed or logged out.
			return ErrUnauthenticated
		}

		if record.ExpiresAt.Before(time.Now()) {
			// Mark the record dead and let the transaction commit; the
			// expired flag turns the nil return into a rejection below.
			if err := s.store.Revoke(tx, record.ID); err != nil {
				return err
			}
			expired = true
			return nil
		}

		won, err := s.store.RevokeIfActive(tx, record.ID)
		if err != nil {
			return err
		}
		if !won {
			return ErrUnauthenticated
		}

		pair, err = s.issuePair(tx, record.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrUnauthenticated
	}

	return pair, nil
}
