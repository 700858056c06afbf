package devserver

import (
	"errors"
	"net/http"

	"github.com/jrsteele09/isp-console/roles"
)

// RolesListHandler answers with a bare array; the roles list is never paginated.
func (s *Server) RolesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Roles.List()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Could not list roles")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) RoleGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, err := s.repos.Roles.Get(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "Not found.")
			return
		}
		writeJSON(w, http.StatusOK, role)
	}
}

func (s *Server) RoleCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var role roles.Role
		if !decodeJSON(w, r, &role) {
			return
		}
		if err := roles.Validate(role); err != nil {
			writeValidation(w, err)
			return
		}
		role.ID = ""
		if err := s.repos.Roles.Upsert(&role); err != nil {
			writeError(w, http.StatusInternalServerError, "Could not create role")
			return
		}
		writeJSON(w, http.StatusCreated, &role)
	}
}

func (s *Server) RoleAssignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a roles.Assignment
		if !decodeJSON(w, r, &a) {
			return
		}
		if _, err := s.repos.Users.GetByID(a.UserID.String()); err != nil {
			writeFieldErrors(w, map[string]string{"user_id": "Unknown user"})
			return
		}
		err := s.repos.Roles.Assign(a.UserID.String(), a.RoleID.String())
		if errors.Is(err, roles.ErrRoleNotFound) {
			writeFieldErrors(w, map[string]string{"role_id": "Unknown role"})
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Could not assign role")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Role assigned"})
	}
}

func (s *Server) RoleDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repos.Roles.Delete(r.PathValue("id")); err != nil {
			writeError(w, http.StatusNotFound, "Not found.")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
