package httpserver

import (
	"net/http"
	"strings"
	"testing"

	contenthttp "quill/contexts/community-content/content-service/transport/http"
)

func TestListProfilesRequiresAdmin(t *testing.T) {
	server := newTestServer()
	user := registerAndLogin(t, server, "alice", "alice@example.com")
	admin := registerAdmin(t, server)

	if rr := serve(server, http.MethodGet, "/users/profile", "", ""); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := serve(server, http.MethodGet, "/users/profile", user.Token, ""); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr := serve(server, http.MethodGet, "/users/profile", admin.Token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if profiles := decodeBody[[]contenthttp.AccountDTO](t, rr); len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}

	count := serve(server, http.MethodGet, "/users/count", admin.Token, "")
	if count.Code != http.StatusOK || decodeBody[int64](t, count) != 2 {
		t.Fatalf("expected count 2, got %d body=%s", count.Code, count.Body.String())
	}
}

func TestGetProfileIsPublicAndValidatesID(t *testing.T) {
	server := newTestServer()
	user := registerAndLogin(t, server, "alice", "alice@example.com")

	rr := serve(server, http.MethodGet, "/users/profile/"+user.ID, "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "password") {
		t.Fatalf("profile leaked password field: %s", rr.Body.String())
	}

	bad := serve(server, http.MethodGet, "/users/profile/not-an-id", "", "")
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", bad.Code, bad.Body.String())
	}
	if got := decodeBody[contenthttp.ErrorResponse](t, bad).Message; got != "invalid id" {
		t.Fatalf("unexpected message %q", got)
	}

	missing := serve(server, http.MethodGet, "/users/profile/6f1c2d4e-8a8b-4c1e-9d7a-0c5b6a4f3e21", "", "")
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", missing.Code, missing.Body.String())
	}
}

func TestUpdateProfileIsOwnerOnly(t *testing.T) {
	server := newTestServer()
	alice := registerAndLogin(t, server, "alice", "alice@example.com")
	bob := registerAndLogin(t, server, "bob", "bob@example.com")
	admin := registerAdmin(t, server)
	path := "/users/profile/" + alice.ID

	if rr := serve(server, http.MethodPut, path, bob.Token, `{"bio":"hacked"}`); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for other user, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := serve(server, http.MethodPut, path, admin.Token, `{"bio":"hacked"}`); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr := serve(server, http.MethodPut, path, alice.Token, `{"bio":"hello"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := decodeBody[contenthttp.AccountDTO](t, rr).Bio; got != "hello" {
		t.Fatalf("expected updated bio, got %q", got)
	}
}

func TestDeleteProfileIsOwnerOrAdmin(t *testing.T) {
	server := newTestServer()
	alice := registerAndLogin(t, server, "alice", "alice@example.com")
	bob := registerAndLogin(t, server, "bob", "bob@example.com")
	admin := registerAdmin(t, server)
	createPost(t, server, alice.Token)

	if rr := serve(server, http.MethodDelete, "/users/profile/"+alice.ID, bob.Token, ""); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := serve(server, http.MethodDelete, "/users/profile/"+alice.ID, admin.Token, ""); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := serve(server, http.MethodGet, "/users/profile/"+alice.ID, "", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d body=%s", rr.Code, rr.Body.String())
	}
	count := serve(server, http.MethodGet, "/posts/count", "", "")
	if decodeBody[int64](t, count) != 0 {
		t.Fatalf("expected posts removed with the account, body=%s", count.Body.String())
	}

	if rr := serve(server, http.MethodDelete, "/users/profile/"+bob.ID, bob.Token, ""); rr.Code != http.StatusOK {
		t.Fatalf("expected self delete 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUploadProfilePhoto(t *testing.T) {
	server := newTestServer()
	alice := registerAndLogin(t, server, "alice", "alice@example.com")

	if rr := serveImage(t, server, http.MethodPost, "/users/profile/profile-photo-upload", "", nil, pngBytes); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := serveImage(t, server, http.MethodPost, "/users/profile/profile-photo-upload", alice.Token, nil, nil); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := serveImage(t, server, http.MethodPost, "/users/profile/profile-photo-upload", alice.Token, nil, []byte("not an image at all")); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-image, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr := serveImage(t, server, http.MethodPost, "/users/profile/profile-photo-upload", alice.Token, nil, pngBytes)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	resp := decodeBody[contenthttp.ProfilePhotoResponse](t, rr)
	if resp.ProfilePhoto.PublicID == "" || !server.content.Images.Has(resp.ProfilePhoto.PublicID) {
		t.Fatalf("expected stored photo, got %+v", resp.ProfilePhoto)
	}
}
