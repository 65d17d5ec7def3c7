package httpserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"

	contenthttp "quill/contexts/community-content/content-service/transport/http"
)

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	server := newTestServer()
	registerAndLogin(t, server, "alice", "alice@example.com")

	rr := serve(server, http.MethodPost, "/auth/register", "",
		`{"username":"alice2","email":"ALICE@example.com","password":"password123"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := decodeBody[contenthttp.ErrorResponse](t, rr).Message; got != "user already exist" {
		t.Fatalf("expected duplicate message, got %q", got)
	}
}

func TestRegisterSurfacesValidationMessage(t *testing.T) {
	server := newTestServer()
	rr := serve(server, http.MethodPost, "/auth/register", "",
		`{"username":"alice","email":"alice@example.com","password":"short"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	body := decodeBody[contenthttp.ErrorResponse](t, rr)
	if body.Code != "validation_failed" || body.Message != `"password" length must be at least 8 characters long` {
		t.Fatalf("unexpected validation body %+v", body)
	}
}

func TestRegisterRejectsPasswordBeyondBcryptLimit(t *testing.T) {
	server := newTestServer()
	rr := serve(server, http.MethodPost, "/auth/register", "",
		`{"username":"alice","email":"alice@example.com","password":"`+strings.Repeat("p", 80)+`"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	body := decodeBody[contenthttp.ErrorResponse](t, rr)
	if body.Code != "validation_failed" || body.Message != `"password" length must be less than or equal to 72 bytes long` {
		t.Fatalf("unexpected validation body %+v", body)
	}
}

func TestRegisterRejectsMalformedJSON(t *testing.T) {
	server := newTestServer()
	rr := serve(server, http.MethodPost, "/auth/register", "", `{"username":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLoginAnswersUnknownEmailAndWrongPasswordAlike(t *testing.T) {
	server := newTestServer()
	registerAndLogin(t, server, "alice", "alice@example.com")

	wrong := serve(server, http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"password999"}`)
	unknown := serve(server, http.MethodPost, "/auth/login", "", `{"email":"nobody@example.com","password":"password123"}`)
	if wrong.Code != http.StatusBadRequest || unknown.Code != http.StatusBadRequest {
		t.Fatalf("expected 400/400, got %d/%d", wrong.Code, unknown.Code)
	}
	if wrong.Body.String() != unknown.Body.String() {
		t.Fatalf("expected identical bodies, got %s vs %s", wrong.Body.String(), unknown.Body.String())
	}
	if !strings.Contains(wrong.Body.String(), "invalid email or password") {
		t.Fatalf("unexpected body %s", wrong.Body.String())
	}
}

func TestLoginResponseShape(t *testing.T) {
	server := newTestServer()
	resp := registerAndLogin(t, server, "alice", "alice@example.com")
	if resp.ID == "" || resp.Token == "" || resp.IsAdmin {
		t.Fatalf("unexpected login response %+v", resp)
	}
	if resp.ProfilePhoto.URL == "" || resp.ProfilePhoto.PublicID != "" {
		t.Fatalf("expected placeholder profile photo, got %+v", resp.ProfilePhoto)
	}
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	server := newTestServerWithOptions(Options{AuthRateLimit: 1, AuthBurst: 1})

	first := serve(server, http.MethodPost, "/auth/login", "", `{"email":"a@example.com","password":"password123"}`)
	if first.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 first attempt, got %d body=%s", first.Code, first.Body.String())
	}
	second := serve(server, http.MethodPost, "/auth/login", "", `{"email":"a@example.com","password":"password123"}`)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d body=%s", second.Code, second.Body.String())
	}

	other := serve(server, http.MethodGet, "/posts", "", "")
	if other.Code != http.StatusOK {
		t.Fatalf("expected non-auth routes to stay open, got %d", other.Code)
	}
}

func TestAuthRateLimitIgnoresForwardedHeaderFromUntrustedPeer(t *testing.T) {
	server := newTestServerWithOptions(Options{AuthRateLimit: 1, AuthBurst: 1})

	for i, want := range []int{http.StatusBadRequest, http.StatusTooManyRequests, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"a@example.com","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		rr := httptest.NewRecorder()
		server.Handler().ServeHTTP(rr, req)
		if rr.Code != want {
			t.Fatalf("attempt %d: expected %d, got %d body=%s", i, want, rr.Code, rr.Body.String())
		}
	}
}

func TestAuthRateLimitUsesForwardedClientBehindTrustedProxy(t *testing.T) {
	server := newTestServerWithOptions(Options{
		AuthRateLimit:  1,
		AuthBurst:      1,
		TrustedProxies: []netip.Prefix{netip.MustParsePrefix("192.0.2.0/24")},
	})

	attempt := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"a@example.com","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "192.0.2.10:4321"
		req.Header.Set("X-Forwarded-For", forwarded)
		rr := httptest.NewRecorder()
		server.Handler().ServeHTTP(rr, req)
		return rr.Code
	}

	if got := attempt("198.51.100.7"); got != http.StatusBadRequest {
		t.Fatalf("expected 400 first attempt, got %d", got)
	}
	// A client-prepended hop is ignored: the proxy appended the real peer last.
	if got := attempt("10.9.9.9, 198.51.100.7"); got != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for the same forwarded client, got %d", got)
	}
	if got := attempt("203.0.113.5"); got != http.StatusBadRequest {
		t.Fatalf("expected a separate bucket for another client, got %d", got)
	}
}

func TestGuardRejectsMissingAndInvalidTokens(t *testing.T) {
	server := newTestServer()

	missing := serve(server, http.MethodGet, "/comments", "", "")
	if missing.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", missing.Code, missing.Body.String())
	}
	if got := decodeBody[contenthttp.ErrorResponse](t, missing).Message; got != "no token provided, access denied" {
		t.Fatalf("unexpected message %q", got)
	}

	invalid := serve(server, http.MethodGet, "/comments", "garbage", "")
	if invalid.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", invalid.Code, invalid.Body.String())
	}
	if got := decodeBody[contenthttp.ErrorResponse](t, invalid).Message; got != "invalid token, access denied" {
		t.Fatalf("unexpected message %q", got)
	}
}
