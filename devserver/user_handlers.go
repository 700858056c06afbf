package devserver

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/jrsteele09/isp-console/internal/errors"
	"github.com/jrsteele09/isp-console/internal/utils"
	"github.com/jrsteele09/isp-console/users"
)

type createUserRequest struct {
	users.CreateForm
	IsActive *bool `json:"is_active"`
}

func (s *Server) UsersListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size, offset := pageParams(r)
		list, total, err := s.repos.Users.List(r.URL.Query().Get("search"), offset, size)
		if err != nil {
			log.Err(err).Msg("listing users")
			writeError(w, http.StatusInternalServerError, "Could not list users")
			return
		}
		writeJSON(w, http.StatusOK, newPageBody(r, list, total, page, size))
	}
}

func (s *Server) UserGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.repos.Users.GetByID(r.PathValue("id"))
		if errors.Is(err, users.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "Not found.")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Could not load user")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.currentUser(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) UserCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		// the confirmation never leaves the client
		req.ConfirmPassword = req.Password
		if err := users.ValidateCreate(req.CreateForm); err != nil {
			writeValidation(w, err)
			return
		}
		if _, err := s.repos.Users.GetByLoginID(req.LoginID); err == nil {
			writeFieldErrors(w, map[string]string{"login_id": "Login ID is already taken"})
			return
		}

		hash, err := users.HashPassword(req.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Could not create user")
			return
		}
		user := &users.User{
			LoginID:        req.LoginID,
			Name:           req.Name,
			Email:          req.Email,
			Mobile:         req.Mobile,
			UserType:       req.UserType,
			OrganizationID: req.OrganizationID,
			IsActive:       utils.ValueOr(req.IsActive, true),
			PasswordHash:   hash,
		}
		user.DateJoined.Time = s.nowTime()
		if err := s.repos.Users.Upsert(user); err != nil {
			writeError(w, http.StatusInternalServerError, "Could not create user")
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}

func (s *Server) UserUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stored, err := s.repos.Users.GetByID(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "Not found.")
			return
		}
		var form users.UpdateForm
		if !decodeJSON(w, r, &form) {
			return
		}
		if err := users.ValidateUpdate(form); err != nil {
			writeValidation(w, err)
			return
		}

		user := *stored
		utils.Assign(&user.Name, form.Name)
		utils.Assign(&user.Email, form.Email)
		utils.Assign(&user.Mobile, form.Mobile)
		utils.Assign(&user.UserType, form.UserType)
		utils.Assign(&user.IsActive, form.IsActive)
		if err := s.repos.Users.Upsert(&user); err != nil {
			writeError(w, http.StatusInternalServerError, "Could not update user")
			return
		}
		writeJSON(w, http.StatusOK, &user)
	}
}

func (s *Server) UserDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if claims := claimsFrom(r.Context()); claims != nil && claims.Subject == id {
			writeError(w, http.StatusBadRequest, "You cannot delete your own account")
			return
		}
		if err := s.repos.Users.Delete(id); err != nil {
			writeError(w, http.StatusNotFound, "Not found.")
			return
		}
		if _, err := s.refresh.RevokeAll(id); err != nil {
			log.Err(err).Str("user", id).Msg("revoking tokens of deleted user")
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeValidation(w http.ResponseWriter, err error) {
	var fe apperrors.FieldErrors
	if errors.As(err, &fe) {
		writeFieldErrors(w, fe)
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

