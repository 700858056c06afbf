package tokenstore

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Pair is the access/refresh credential pair issued by the backend.
type Pair struct {
	Access    string
	Refresh   string
	ExpiresAt time.Time // zero when unknown
}

// OAuth2 exposes the pair as an oauth2.Token so callers can use its validity
// rules and header helpers.
func (p Pair) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  p.Access,
		TokenType:    "Bearer",
		RefreshToken: p.Refresh,
		Expiry:       p.ExpiresAt,
	}
}

// Valid reports whether the access token is present and not about to expire.
// A pair with an unknown expiry is considered valid until the backend says otherwise.
func (p Pair) Valid() bool {
	return p.OAuth2().Valid()
}

// ExpiryFromJWT reads the exp claim of an access token without verifying its
// signature. Opaque tokens and tokens without exp give the zero time.
func ExpiryFromJWT(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
