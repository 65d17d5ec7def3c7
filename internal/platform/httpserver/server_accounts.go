package httpserver

import (
	"net/http"

	contenthttp "quill/contexts/community-content/content-service/transport/http"
	identityv1 "quill/contracts/identity/v1"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req contenthttp.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.content.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req contenthttp.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.content.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request, _ identityv1.Principal) {
	resp, err := s.content.Handler.ListProfilesHandler(r.Context())
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request, _ identityv1.Principal) {
	resp, err := s.content.Handler.GetProfileHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, _ identityv1.Principal) {
	var req contenthttp.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.content.Handler.UpdateProfileHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request, _ identityv1.Principal) {
	resp, err := s.content.Handler.DeleteProfileHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCountAccounts(w http.ResponseWriter, r *http.Request, _ identityv1.Principal) {
	count, err := s.content.Handler.CountAccountsHandler(r.Context())
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, count)
}

func (s *Server) handleUploadProfilePhoto(w http.ResponseWriter, r *http.Request, principal identityv1.Principal) {
	path, err := s.stager.Stage(w, r)
	if err != nil {
		writeStagingError(w, err)
		return
	}
	resp, err := s.content.Handler.UploadProfilePhotoHandler(r.Context(), principal, path)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
