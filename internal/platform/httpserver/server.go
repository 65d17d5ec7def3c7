package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	contentservice "quill/contexts/community-content/content-service"
	contentdomainerrors "quill/contexts/community-content/content-service/domain/errors"
	contenthttp "quill/contexts/community-content/content-service/transport/http"
	credential "quill/contexts/identity-access/credential-service"
	"quill/contexts/identity-access/credential-service/domain/entities"
	credentialerrors "quill/contexts/identity-access/credential-service/domain/errors"
	credentialhttp "quill/contexts/identity-access/credential-service/transport/http"
	identityv1 "quill/contracts/identity/v1"
	"quill/internal/platform/metrics"
	"quill/internal/platform/staging"

	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"
	_ "quill/internal/platform/httpserver/docs"
)

// Stager copies an inbound multipart image to a local path.
type Stager interface {
	Stage(w http.ResponseWriter, r *http.Request) (string, error)
}

type Options struct {
	Addr    string
	Stager  Stager
	Metrics *metrics.Metrics
	// AuthRateLimit <= 0 disables the /auth limiter.
	AuthRateLimit rate.Limit
	AuthBurst     int
	// TrustedProxies lists the peers whose X-Forwarded-For header is
	// believed. Requests from any other peer are keyed on RemoteAddr.
	TrustedProxies []netip.Prefix
}

type Server struct {
	mux         *http.ServeMux
	handler     http.Handler
	logger      *slog.Logger
	addr        string
	content     contentservice.Module
	credential  credential.Module
	stager      Stager
	metrics     *metrics.Metrics
	authLimiter *clientLimiter
	proxies     []netip.Prefix
	httpServer  *http.Server
}

func New(
	content contentservice.Module,
	credentialModule credential.Module,
	opts Options,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.Stager == nil {
		opts.Stager = staging.Stager{}
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       opts.Addr,
		content:    content,
		credential: credentialModule,
		stager:     opts.Stager,
		metrics:    opts.Metrics,
		proxies:    opts.TrustedProxies,
	}
	if opts.AuthRateLimit > 0 {
		s.authLimiter = newClientLimiter(opts.AuthRateLimit, opts.AuthBurst)
	}
	s.registerRoutes()

	s.handler = s.mux
	if s.metrics != nil {
		s.handler = s.metrics.Middleware(s.mux)
	}
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}

	s.mux.HandleFunc("POST /auth/register", s.limitAuth(s.handleRegister))
	s.mux.HandleFunc("POST /auth/login", s.limitAuth(s.handleLogin))

	s.mux.HandleFunc("GET /users/profile", s.guard(entities.AdminOnly(), s.handleListProfiles))
	s.mux.HandleFunc("GET /users/profile/{id}", s.guard(entities.Anonymous(), s.handleGetProfile))
	s.mux.HandleFunc("PUT /users/profile/{id}", s.guard(entities.OwnerOnly("id"), s.handleUpdateProfile))
	s.mux.HandleFunc("DELETE /users/profile/{id}", s.guard(entities.OwnerOrAdmin("id"), s.handleDeleteProfile))
	s.mux.HandleFunc("GET /users/count", s.guard(entities.AdminOnly(), s.handleCountAccounts))
	s.mux.HandleFunc("POST /users/profile/profile-photo-upload", s.guard(entities.AnyAuthenticated(), s.handleUploadProfilePhoto))

	s.mux.HandleFunc("POST /posts", s.guard(entities.AnyAuthenticated(), s.handleCreatePost))
	s.mux.HandleFunc("GET /posts", s.guard(entities.Anonymous(), s.handleListPosts))
	s.mux.HandleFunc("GET /posts/count", s.guard(entities.Anonymous(), s.handleCountPosts))
	s.mux.HandleFunc("GET /posts/{id}", s.guard(entities.Anonymous(), s.handleGetPost))
	s.mux.HandleFunc("PUT /posts/{id}", s.guard(entities.AnyAuthenticated(), s.handleUpdatePost))
	s.mux.HandleFunc("DELETE /posts/{id}", s.guard(entities.AnyAuthenticated(), s.handleDeletePost))
	s.mux.HandleFunc("PUT /posts/update-image/{id}", s.guard(entities.AnyAuthenticated(), s.handleUpdatePostImage))
	s.mux.HandleFunc("PUT /posts/like/{id}", s.guard(entities.AnyAuthenticated(), s.handleToggleLike))

	s.mux.HandleFunc("POST /comments", s.guard(entities.AnyAuthenticated(), s.handleCreateComment))
	s.mux.HandleFunc("GET /comments", s.guard(entities.AdminOnly(), s.handleListComments))
	s.mux.HandleFunc("PUT /comments/{id}", s.guard(entities.AnyAuthenticated(), s.handleUpdateComment))
	s.mux.HandleFunc("DELETE /comments/{id}", s.guard(entities.AnyAuthenticated(), s.handleDeleteComment))

	s.mux.HandleFunc("POST /categories", s.guard(entities.AdminOnly(), s.handleCreateCategory))
	s.mux.HandleFunc("GET /categories", s.guard(entities.Anonymous(), s.handleListCategories))
	s.mux.HandleFunc("DELETE /categories/{id}", s.guard(entities.AdminOnly(), s.handleDeleteCategory))
}

type guardedHandlerFunc func(w http.ResponseWriter, r *http.Request, principal identityv1.Principal)

// guard rejects a malformed {id} path value, then runs the credential guard
// for the route policy and hands the resolved principal to next.
func (s *Server) guard(policy entities.Policy, next guardedHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id := r.PathValue("id"); id != "" {
			if _, err := uuid.Parse(id); err != nil {
				writeContentError(w, http.StatusBadRequest, "invalid_id", contentdomainerrors.ErrInvalidIdentifier.Error())
				return
			}
		}

		var target string
		if policy.TargetsAccount() {
			target = r.PathValue(policy.Param)
		}
		principal, err := s.credential.Handler.GuardHandler(r.Context(), r.Header.Get("Authorization"), policy, target)
		if err != nil {
			writeGuardError(w, err)
			return
		}
		next(w, r, principal)
	}
}

func (s *Server) limitAuth(next http.HandlerFunc) http.HandlerFunc {
	if s.authLimiter == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		client := s.clientIP(r)
		if !s.authLimiter.Allow(client) {
			s.logger.Warn("auth request rate limited",
				"event", "http_auth_rate_limited",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"client_ip", client,
				"path", r.URL.Path,
			)
			writeContentError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, try again later")
			return
		}
		next(w, r)
	}
}

func (s *Server) writeContentDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contentdomainerrors.ErrValidationFailed):
		writeContentError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, contentdomainerrors.ErrInvalidIdentifier):
		writeContentError(w, http.StatusBadRequest, "invalid_id", err.Error())
	case errors.Is(err, contentdomainerrors.ErrInvalidPageNumber):
		writeContentError(w, http.StatusBadRequest, "invalid_page_number", err.Error())
	case errors.Is(err, contentdomainerrors.ErrAccountAlreadyExists):
		writeContentError(w, http.StatusBadRequest, "account_exists", err.Error())
	case errors.Is(err, contentdomainerrors.ErrInvalidCredentials):
		writeContentError(w, http.StatusBadRequest, "invalid_credentials", err.Error())
	case errors.Is(err, contentdomainerrors.ErrImageRequired),
		errors.Is(err, contentdomainerrors.ErrFileRequired):
		writeContentError(w, http.StatusBadRequest, "image_required", err.Error())
	case errors.Is(err, contentdomainerrors.ErrAccountNotFound),
		errors.Is(err, contentdomainerrors.ErrPostNotFound),
		errors.Is(err, contentdomainerrors.ErrCommentNotFound),
		errors.Is(err, contentdomainerrors.ErrCategoryNotFound):
		writeContentError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, contentdomainerrors.ErrNotPostOwner),
		errors.Is(err, contentdomainerrors.ErrForbidden),
		errors.Is(err, contentdomainerrors.ErrNotCommentOwner),
		errors.Is(err, contentdomainerrors.ErrCommentDeleteDenied):
		writeContentError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, contentdomainerrors.ErrUpstreamStoreFailure):
		s.logger.Error("image store failure",
			"event", "http_content_upstream_failure",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeContentError(w, http.StatusInternalServerError, "image_store_failure", contentdomainerrors.ErrUpstreamStoreFailure.Error())
	default:
		s.logger.Error("unhandled content error",
			"event", "http_content_internal_error",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeContentError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeStagingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, staging.ErrFileTooLarge):
		writeContentError(w, http.StatusBadRequest, "file_too_large", err.Error())
	case errors.Is(err, staging.ErrNotAnImage):
		writeContentError(w, http.StatusBadRequest, "unsupported_file", err.Error())
	case errors.Is(err, staging.ErrMalformedForm):
		writeContentError(w, http.StatusBadRequest, "invalid_form", staging.ErrMalformedForm.Error())
	default:
		writeContentError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeGuardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, credentialerrors.ErrMissingToken):
		writeCredentialError(w, http.StatusUnauthorized, "missing_token", err.Error())
	case errors.Is(err, credentialerrors.ErrInvalidToken):
		writeCredentialError(w, http.StatusUnauthorized, "invalid_token", err.Error())
	case errors.Is(err, credentialerrors.ErrForbiddenAdminOnly),
		errors.Is(err, credentialerrors.ErrForbiddenOwnerOnly),
		errors.Is(err, credentialerrors.ErrForbiddenOwnerOrAdmin):
		writeCredentialError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeCredentialError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeContentError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, contenthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeCredentialError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, credentialhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeContentError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

// clientIP returns the address the auth limiter is keyed on. The forwarded
// chain is walked right to left and the first hop that is not a trusted proxy
// wins; a peer outside the trusted list is the client itself.
func (s *Server) clientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}
	if !s.trusted(peer) {
		return peer
	}
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !s.trusted(hop) {
			return hop
		}
	}
	return peer
}

func (s *Server) trusted(address string) bool {
	if len(s.proxies) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(address)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range s.proxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
