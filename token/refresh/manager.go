package refresh

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

const tokenLength = 32

var ErrRefreshTokenExpired = errors.New("refresh token expired")

// Manager handles refresh token creation, validation, and rotation
type Manager struct {
	repo    Repo
	expiry  time.Duration
	nowTime func() time.Time
}

type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// NewManager creates a new refresh token manager
func NewManager(repo Repo, expiry time.Duration, options ...ManagerOption) *Manager {
	m := &Manager{
		repo:    repo,
		expiry:  expiry,
		nowTime: time.Now,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Create generates a new refresh token and stores it
func (m *Manager) Create(userID string, rememberMe bool) (string, error) {
	tokenBytes := make([]byte, tokenLength)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	tokenStr := hex.EncodeToString(tokenBytes)
	if err := m.repo.Upsert(&StoredRefreshToken{
		Token:      tokenStr,
		UserID:     userID,
		RememberMe: rememberMe,
		Iat:        m.nowTime(),
	}); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return tokenStr, nil
}

// Rotate validates token, revokes it and issues its replacement. The stored
// metadata of the old token is returned so the caller can issue an access
// token for the same user.
func (m *Manager) Rotate(token string) (*StoredRefreshToken, string, error) {
	stored, err := m.repo.Get(token)
	if err != nil {
		return nil, "", err
	}
	if m.IsExpired(stored) {
		_ = m.repo.Delete(token)
		return nil, "", ErrRefreshTokenExpired
	}
	if err := m.repo.Delete(token); err != nil {
		return nil, "", fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	next, err := m.Create(stored.UserID, stored.RememberMe)
	if err != nil {
		return nil, "", err
	}
	return stored, next, nil
}

// Revoke removes one token. Unknown tokens are ignored.
func (m *Manager) Revoke(token string) error {
	if err := m.repo.Delete(token); err != nil && !errors.Is(err, ErrRefreshTokenNotFound) {
		return err
	}
	return nil
}

// RevokeAll removes every token held by userID.
func (m *Manager) RevokeAll(userID string) (int, error) {
	return m.repo.DeleteByUserID(userID)
}

// Get retrieves a refresh token from storage
func (m *Manager) Get(token string) (*StoredRefreshToken, error) {
	return m.repo.Get(token)
}

// IsExpired checks if a refresh token has outlived the configured expiry
func (m *Manager) IsExpired(rt *StoredRefreshToken) bool {
	return m.nowTime().Sub(rt.Iat) > m.expiry
}
