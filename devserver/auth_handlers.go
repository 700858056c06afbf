package devserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/isp-console/token/refresh"
	"github.com/jrsteele09/isp-console/users"
)

type loginRequest struct {
	LoginID    string `json:"login_id"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken     string `json:"refresh_token"`
	LogoutAllDevices bool   `json:"logout_all_devices"`
}

type tokensBody struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type authData struct {
	User       *users.User `json:"user"`
	Tokens     *tokensBody `json:"tokens,omitempty"`
	ExpiresAt  *time.Time  `json:"expires_at,omitempty"`
	RememberMe bool        `json:"remember_me"`
}

type authBody struct {
	Data authData `json:"data"`
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.LoginID == "" || req.Password == "" {
			writeFieldErrors(w, map[string]string{"login_id": "Login ID and password are required"})
			return
		}

		stored, err := s.repos.Users.GetByLoginID(req.LoginID)
		if err != nil || !users.CheckPasswordHash(req.Password, stored.PasswordHash) {
			writeError(w, http.StatusUnauthorized, "Invalid login ID or password")
			return
		}
		if !stored.IsActive {
			writeError(w, http.StatusForbidden, "Account is disabled")
			return
		}
		user := *stored

		refreshToken, err := s.refresh.Create(user.ID.String(), req.RememberMe)
		if err != nil {
			log.Err(err).Msg("issuing refresh token")
			writeError(w, http.StatusInternalServerError, "Could not sign in")
			return
		}

		user.LastLogin.Time = s.nowTime()
		if err := s.repos.Users.Upsert(&user); err != nil {
			log.Err(err).Str("user", user.ID.String()).Msg("recording last login")
		}

		s.writeSession(w, user, refreshToken, req.RememberMe)
		log.Info().Str("login_id", user.LoginID).Msg("login")
	}
}

// RefreshHandler rotates the refresh token. The presented token is revoked.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.RefreshToken == "" {
			writeError(w, http.StatusBadRequest, "refresh_token is required")
			return
		}

		stored, next, err := s.refresh.Rotate(req.RefreshToken)
		switch {
		case errors.Is(err, refresh.ErrRefreshTokenNotFound), errors.Is(err, refresh.ErrRefreshTokenExpired):
			writeError(w, http.StatusUnauthorized, "Token is invalid or expired")
			return
		case err != nil:
			log.Err(err).Msg("rotating refresh token")
			writeError(w, http.StatusInternalServerError, "Could not refresh session")
			return
		}

		user, err := s.repos.Users.GetByID(stored.UserID)
		if err != nil || !user.IsActive {
			_ = s.refresh.Revoke(next)
			writeError(w, http.StatusUnauthorized, "Token is invalid or expired")
			return
		}
		s.writeSession(w, *user, next, stored.RememberMe)
	}
}

// LogoutHandler revokes the presented refresh token, or every token of its
// owner. Unknown tokens still succeed.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req logoutRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if req.LogoutAllDevices {
			if stored, err := s.refresh.Get(req.RefreshToken); err == nil {
				n, err := s.refresh.RevokeAll(stored.UserID)
				if err != nil {
					log.Err(err).Msg("revoking all refresh tokens")
					writeError(w, http.StatusInternalServerError, "Could not sign out")
					return
				}
				log.Info().Str("user", stored.UserID).Int("revoked", n).Msg("logout all devices")
			}
		} else if err := s.refresh.Revoke(req.RefreshToken); err != nil {
			log.Err(err).Msg("revoking refresh token")
			writeError(w, http.StatusInternalServerError, "Could not sign out")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
	}
}

func (s *Server) VerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.currentUser(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, authBody{Data: authData{User: user}})
	}
}

// writeSession answers with the auth envelope for a copy of the account.
func (s *Server) writeSession(w http.ResponseWriter, user users.User, refreshToken string, rememberMe bool) {
	user.Roles = s.roleNames(user.ID.String())
	access, expiresAt, err := s.access.CreateAccessToken(&user)
	if err != nil {
		log.Err(err).Msg("issuing access token")
		writeError(w, http.StatusInternalServerError, "Could not sign in")
		return
	}
	writeJSON(w, http.StatusOK, authBody{Data: authData{
		User:       &user,
		Tokens:     &tokensBody{Access: access, Refresh: refreshToken},
		ExpiresAt:  &expiresAt,
		RememberMe: rememberMe,
	}})
}

// currentUser loads the account behind the verified bearer token.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (*users.User, bool) {
	claims := claimsFrom(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return nil, false
	}
	stored, err := s.repos.Users.GetByID(claims.Subject)
	if err != nil || !stored.IsActive {
		writeError(w, http.StatusUnauthorized, "User not found or inactive")
		return nil, false
	}
	user := *stored
	user.Roles = s.roleNames(user.ID.String())
	return &user, true
}

func (s *Server) roleNames(userID string) []string {
	assigned, err := s.repos.Roles.RolesForUser(userID)
	if err != nil {
		log.Err(err).Str("user", userID).Msg("loading roles")
		return nil
	}
	names := make([]string, 0, len(assigned))
	for _, r := range assigned {
		names = append(names, r.Name)
	}
	return names
}
