package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	contentservice "quill/contexts/community-content/content-service"
	"quill/contexts/community-content/content-service/application/commands"
	contenthttp "quill/contexts/community-content/content-service/transport/http"
	credential "quill/contexts/identity-access/credential-service"
	"quill/internal/platform/metrics"
	"quill/internal/platform/staging"
	"quill/internal/platform/validation"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestServerWithOptions(opts Options) *Server {
	credentials, err := credential.NewInMemoryModule("test-secret", slog.Default())
	if err != nil {
		panic(err)
	}
	content := contentservice.NewInMemoryModule(credentials.Credentials, validation.New(), slog.Default())
	if opts.Addr == "" {
		opts.Addr = ":0"
	}
	if opts.Stager == nil {
		opts.Stager = staging.Stager{Dir: os.TempDir(), MaxBytes: 1 << 20}
	}
	return New(content, credentials, opts, slog.Default())
}

func newTestServer() *Server {
	return newTestServerWithOptions(Options{Metrics: metrics.New()})
}

func serve(server *Server, method string, path string, token string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func serveImage(t *testing.T, server *Server, method string, path string, token string, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if image != nil {
		part, err := writer.CreateFormFile(staging.FieldName, "photo.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return out
}

func registerAndLogin(t *testing.T, server *Server, username string, email string) contenthttp.LoginResponse {
	t.Helper()
	register := serve(server, http.MethodPost, "/auth/register", "",
		`{"username":"`+username+`","email":"`+email+`","password":"password123"}`)
	if register.Code != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", register.Code, register.Body.String())
	}
	return login(t, server, email)
}

func login(t *testing.T, server *Server, email string) contenthttp.LoginResponse {
	t.Helper()
	rr := serve(server, http.MethodPost, "/auth/login", "", `{"email":"`+email+`","password":"password123"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", rr.Code, rr.Body.String())
	}
	return decodeBody[contenthttp.LoginResponse](t, rr)
}

func registerAdmin(t *testing.T, server *Server) contenthttp.LoginResponse {
	t.Helper()
	registerAndLogin(t, server, "root", "root@example.com")
	if _, err := server.content.Promote.Execute(context.Background(), commands.PromoteAccountCommand{Email: "root@example.com"}); err != nil {
		t.Fatalf("promote: %v", err)
	}
	admin := login(t, server, "root@example.com")
	if !admin.IsAdmin {
		t.Fatalf("expected promoted account to log in as admin")
	}
	return admin
}

func createPost(t *testing.T, server *Server, token string) contenthttp.PostDTO {
	t.Helper()
	rr := serveImage(t, server, http.MethodPost, "/posts", token, map[string]string{
		"title":       "Sunset",
		"description": "a long enough description",
		"category":    "travel",
	}, pngBytes)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 create post, got %d body=%s", rr.Code, rr.Body.String())
	}
	return decodeBody[contenthttp.PostDTO](t, rr)
}
