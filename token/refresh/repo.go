package refresh

import (
	"errors"
	"time"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// StoredRefreshToken represents the server-side storage of refresh token metadata.
// The client only receives the Token field (a random string).
type StoredRefreshToken struct {
	Token      string    // The actual random token string (sent to client)
	UserID     string    // Server-side metadata
	RememberMe bool      // Whether the session was started with remember me
	Iat        time.Time // Issued at time
}

// Repo manages server-side storage of refresh token metadata keyed by the
// token string. A user may hold one token per signed in device.
type Repo interface {
	Upsert(refreshToken *StoredRefreshToken) error
	Delete(token string) error
	Get(token string) (*StoredRefreshToken, error)
	ListByUserID(userID string) ([]*StoredRefreshToken, error)
	DeleteByUserID(userID string) (int, error)
}
