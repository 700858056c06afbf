package storage

import "errors"

// Fixed names of the persisted client entries.
const (
	AccessTokenKey  = "authToken"
	RefreshTokenKey = "refreshToken"
	RememberMeKey   = "rememberMe"
	ThemeKey        = "theme"
)

var ErrNotFound = errors.New("storage entry not found")

// Repo is the durable client-side key/value surface. Get returns ErrNotFound
// for a missing key; Delete of a missing key is not an error.
type Repo interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
