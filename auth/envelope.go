package auth

import (
	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/tokenstore"
	"github.com/jrsteele09/isp-console/users"
)

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken     string `json:"refresh_token"`
	LogoutAllDevices bool   `json:"logout_all_devices"`
}

// authResponse is the envelope every /auth/ endpoint answers with.
type authResponse struct {
	Data authData    `json:"data"`
	User *users.User `json:"user"` // some verify responses put the user at the top level
}

type authData struct {
	User   *users.User `json:"user"`
	Tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	} `json:"tokens"`
	ExpiresAt  api.Timestamp `json:"expires_at"`
	RememberMe bool          `json:"remember_me"`
}

func (r authResponse) user() *users.User {
	if r.Data.User != nil {
		return r.Data.User
	}
	return r.User
}

func (r authResponse) pair() tokenstore.Pair {
	p := tokenstore.Pair{
		Access:    r.Data.Tokens.Access,
		Refresh:   r.Data.Tokens.Refresh,
		ExpiresAt: r.Data.ExpiresAt.Time,
	}
	if p.ExpiresAt.IsZero() {
		p.ExpiresAt = tokenstore.ExpiryFromJWT(p.Access)
	}
	return p
}
