package tokenstore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jrsteele09/isp-console/storage"
)

const rememberMeValue = "true"

// Store is the only writer of persisted credentials. It performs no validation
// of token format or expiry beyond deriving ExpiresAt on read.
type Store struct {
	repo storage.Repo
	mu   sync.Mutex
}

func New(repo storage.Repo) *Store {
	return &Store{repo: repo}
}

// Save persists the access and refresh tokens. The remember flag is only
// written when rememberMe is true; an existing flag is left untouched otherwise.
func (s *Store) Save(pair Pair, rememberMe bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Set(storage.AccessTokenKey, pair.Access); err != nil {
		return fmt.Errorf("[Store.Save] access token: %w", err)
	}
	if err := s.repo.Set(storage.RefreshTokenKey, pair.Refresh); err != nil {
		return fmt.Errorf("[Store.Save] refresh token: %w", err)
	}
	if rememberMe {
		if err := s.repo.Set(storage.RememberMeKey, rememberMeValue); err != nil {
			return fmt.Errorf("[Store.Save] remember flag: %w", err)
		}
	}
	return nil
}

// Read returns whatever is persisted, possibly partial or stale, or nil when
// neither token is stored.
func (s *Store) Read() (*Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	access, err := s.get(storage.AccessTokenKey)
	if err != nil {
		return nil, err
	}
	refresh, err := s.get(storage.RefreshTokenKey)
	if err != nil {
		return nil, err
	}
	if access == "" && refresh == "" {
		return nil, nil
	}
	return &Pair{
		Access:    access,
		Refresh:   refresh,
		ExpiresAt: ExpiryFromJWT(access),
	}, nil
}

// RememberMe reports whether the remember flag is persisted.
func (s *Store) RememberMe() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.get(storage.RememberMeKey)
	if err != nil {
		return false, err
	}
	return v == rememberMeValue, nil
}

// Clear removes every persisted credential entry, unconditionally.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, key := range []string{storage.AccessTokenKey, storage.RefreshTokenKey, storage.RememberMeKey} {
		if err := s.repo.Delete(key); err != nil {
			errs = append(errs, fmt.Errorf("[Store.Clear] %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Store) get(key string) (string, error) {
	v, err := s.repo.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("[Store.Read] %s: %w", key, err)
	}
	return v, nil
}
