package httpserver

import (
	"net/http"

	contenthttp "quill/contexts/community-content/content-service/transport/http"
	identityv1 "quill/contracts/identity/v1"
)

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request, principal identityv1.Principal) {
	path, err := s.stager.Stage(w, r)
	if err != nil {
		writeStagingError(w, err)
		return
	}
	resp, err := s.content.Handler.CreatePostHandler(
		r.Context(),
		principal,
		path,
		r.FormValue("title"),
		r.FormValue("description"),
		r.FormValue("category"),
	)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request, _ identityv1.Principal) {
	query := r.URL.Query()
	resp, err := s.content.Handler.ListPostsHandler(r.Context(), query.Get("pageNumber"), query.Get("category"))
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCountPosts(w http.ResponseWriter, r *http.Request, _ identityv1.Principal) {
	count, err := s.content.Handler.CountPostsHandler(r.Context())
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, count)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request, _ identityv1.Principal) {
	resp, err := s.content.Handler.GetPostHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request, principal identityv1.Principal) {
	var req contenthttp.UpdatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.content.Handler.UpdatePostHandler(r.Context(), principal, r.PathValue("id"), req)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePostImage(w http.ResponseWriter, r *http.Request, principal identityv1.Principal) {
	path, err := s.stager.Stage(w, r)
	if err != nil {
		writeStagingError(w, err)
		return
	}
	resp, err := s.content.Handler.UpdatePostImageHandler(r.Context(), principal, r.PathValue("id"), path)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request, principal identityv1.Principal) {
	resp, err := s.content.Handler.ToggleLikeHandler(r.Context(), principal, r.PathValue("id"))
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, principal identityv1.Principal) {
	resp, err := s.content.Handler.DeletePostHandler(r.Context(), principal, r.PathValue("id"))
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
