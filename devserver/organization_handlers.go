package devserver

import (
	"net/http"

	"github.com/jrsteele09/isp-console/api"
	"github.com/jrsteele09/isp-console/organizations"
)

func (s *Server) OrganizationsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size, offset := pageParams(r)
		list, total, err := s.repos.Organizations.List(offset, size)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Could not list organizations")
			return
		}
		writeJSON(w, http.StatusOK, newPageBody(r, list, total, page, size))
	}
}

func (s *Server) OrganizationGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		org, err := s.repos.Organizations.Get(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "Not found.")
			return
		}
		writeJSON(w, http.StatusOK, org)
	}
}

func (s *Server) OrganizationCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var org organizations.Organization
		if !decodeJSON(w, r, &org) {
			return
		}
		if err := organizations.Validate(org); err != nil {
			writeValidation(w, err)
			return
		}
		org.ID = ""
		org.CreatedAt.Time = s.nowTime()
		if err := s.repos.Organizations.Upsert(&org); err != nil {
			writeError(w, http.StatusInternalServerError, "Could not create organization")
			return
		}
		writeJSON(w, http.StatusCreated, &org)
	}
}

func (s *Server) OrganizationUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		stored, err := s.repos.Organizations.Get(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "Not found.")
			return
		}
		var org organizations.Organization
		if !decodeJSON(w, r, &org) {
			return
		}
		if err := organizations.Validate(org); err != nil {
			writeValidation(w, err)
			return
		}
		org.ID = api.ID(id)
		org.CreatedAt = stored.CreatedAt
		if err := s.repos.Organizations.Upsert(&org); err != nil {
			writeError(w, http.StatusInternalServerError, "Could not update organization")
			return
		}
		writeJSON(w, http.StatusOK, &org)
	}
}

func (s *Server) OrganizationDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repos.Organizations.Delete(r.PathValue("id")); err != nil {
			writeError(w, http.StatusNotFound, "Not found.")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
