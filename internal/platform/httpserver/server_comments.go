package httpserver

import (
	"net/http"

	contenthttp "quill/contexts/community-content/content-service/transport/http"
	identityv1 "quill/contracts/identity/v1"
)

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request, principal identityv1.Principal) {
	var req contenthttp.CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.content.Handler.CreateCommentHandler(r.Context(), principal, req)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request, _ identityv1.Principal) {
	resp, err := s.content.Handler.ListCommentsHandler(r.Context())
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request, principal identityv1.Principal) {
	var req contenthttp.UpdateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.content.Handler.UpdateCommentHandler(r.Context(), principal, r.PathValue("id"), req)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request, principal identityv1.Principal) {
	resp, err := s.content.Handler.DeleteCommentHandler(r.Context(), principal, r.PathValue("id"))
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request, principal identityv1.Principal) {
	var req contenthttp.CreateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.content.Handler.CreateCategoryHandler(r.Context(), principal, req)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request, _ identityv1.Principal) {
	resp, err := s.content.Handler.ListCategoriesHandler(r.Context())
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request, _ identityv1.Principal) {
	resp, err := s.content.Handler.DeleteCategoryHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
