package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	contenthttp "quill/contexts/community-content/content-service/transport/http"
)

func TestCreatePostRequiresAuthorization(t *testing.T) {
	server := newTestServer()
	rr := serveImage(t, server, http.MethodPost, "/posts", "", map[string]string{"title": "Sunset"}, pngBytes)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreatePostWithoutImageNeverUploads(t *testing.T) {
	server := newTestServer()
	alice := registerAndLogin(t, server, "alice", "alice@example.com")

	rr := serveImage(t, server, http.MethodPost, "/posts", alice.Token, map[string]string{
		"title":       "Sunset",
		"description": "a long enough description",
		"category":    "travel",
	}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := decodeBody[contenthttp.ErrorResponse](t, rr).Message; got != "no image provided" {
		t.Fatalf("unexpected message %q", got)
	}
	if uploads := server.content.Images.Uploads(); len(uploads) != 0 {
		t.Fatalf("expected no uploads, got %v", uploads)
	}
}

func TestPostOwnershipRules(t *testing.T) {
	server := newTestServer()
	alice := registerAndLogin(t, server, "alice", "alice@example.com")
	bob := registerAndLogin(t, server, "bob", "bob@example.com")
	admin := registerAdmin(t, server)
	post := createPost(t, server, alice.Token)
	path := "/posts/" + post.ID

	if rr := serve(server, http.MethodPut, path, bob.Token, `{"title":"Mine now"}`); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for other user, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := serve(server, http.MethodPut, path, admin.Token, `{"title":"Mine now"}`); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin update, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr := serve(server, http.MethodPut, path, alice.Token, `{"title":"Golden hour"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := decodeBody[contenthttp.PostDTO](t, rr).Title; got != "Golden hour" {
		t.Fatalf("expected updated title, got %q", got)
	}

	if rr := serveImage(t, server, http.MethodPut, "/posts/update-image/"+post.ID, bob.Token, nil, pngBytes); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 image update, got %d body=%s", rr.Code, rr.Body.String())
	}

	if rr := serve(server, http.MethodDelete, path, bob.Token, ""); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 delete, got %d body=%s", rr.Code, rr.Body.String())
	}
	deleted := serve(server, http.MethodDelete, path, admin.Token, "")
	if deleted.Code != http.StatusOK {
		t.Fatalf("expected 200 admin delete, got %d body=%s", deleted.Code, deleted.Body.String())
	}
	if got := decodeBody[contenthttp.DeletePostResponse](t, deleted).PostID; got != post.ID {
		t.Fatalf("expected deleted post id %s, got %s", post.ID, got)
	}
	if rr := serve(server, http.MethodGet, path, "", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d body=%s", rr.Code, rr.Body.String())
	}
	if server.content.Images.Has(post.Image.PublicID) {
		t.Fatalf("expected post image released")
	}
}

func TestDeletePostRemovesComments(t *testing.T) {
	server := newTestServer()
	alice := registerAndLogin(t, server, "alice", "alice@example.com")
	bob := registerAndLogin(t, server, "bob", "bob@example.com")
	admin := registerAdmin(t, server)
	post := createPost(t, server, alice.Token)

	if rr := serve(server, http.MethodPost, "/comments", bob.Token, `{"postId":"`+post.ID+`","text":"great"}`); rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 comment, got %d body=%s", rr.Code, rr.Body.String())
	}
	detail := serve(server, http.MethodGet, "/posts/"+post.ID, "", "")
	if got := decodeBody[contenthttp.PostDTO](t, detail).Comments; len(got) != 1 {
		t.Fatalf("expected 1 comment on post, got %d", len(got))
	}

	if rr := serve(server, http.MethodDelete, "/posts/"+post.ID, alice.Token, ""); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	comments := serve(server, http.MethodGet, "/comments", admin.Token, "")
	if got := decodeBody[[]contenthttp.CommentDTO](t, comments); len(got) != 0 {
		t.Fatalf("expected comments removed, got %d", len(got))
	}
}

func TestToggleLike(t *testing.T) {
	server := newTestServer()
	alice := registerAndLogin(t, server, "alice", "alice@example.com")
	bob := registerAndLogin(t, server, "bob", "bob@example.com")
	post := createPost(t, server, alice.Token)
	path := "/posts/like/" + post.ID

	if rr := serve(server, http.MethodPut, path, "", ""); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	liked := decodeBody[contenthttp.PostDTO](t, serve(server, http.MethodPut, path, bob.Token, ""))
	if len(liked.Likes) != 1 || liked.Likes[0] != bob.ID {
		t.Fatalf("expected bob in likes, got %v", liked.Likes)
	}
	unliked := decodeBody[contenthttp.PostDTO](t, serve(server, http.MethodPut, path, bob.Token, ""))
	if len(unliked.Likes) != 0 {
		t.Fatalf("expected likes restored, got %v", unliked.Likes)
	}
}

func TestListPostsQueryModes(t *testing.T) {
	server := newTestServer()
	alice := registerAndLogin(t, server, "alice", "alice@example.com")
	for i := 0; i < 4; i++ {
		createPost(t, server, alice.Token)
	}

	page := serve(server, http.MethodGet, "/posts?pageNumber=2", "", "")
	if page.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", page.Code, page.Body.String())
	}
	if got := decodeBody[[]contenthttp.PostDTO](t, page); len(got) != 1 {
		t.Fatalf("expected 1 post on page 2, got %d", len(got))
	}

	travel := decodeBody[[]contenthttp.PostDTO](t, serve(server, http.MethodGet, "/posts?category=travel", "", ""))
	if len(travel) != 4 {
		t.Fatalf("expected 4 travel posts, got %d", len(travel))
	}
	none := decodeBody[[]contenthttp.PostDTO](t, serve(server, http.MethodGet, "/posts?category=food", "", ""))
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty array, got %v", none)
	}

	for _, bad := range []string{"0", "-2", "two"} {
		rr := serve(server, http.MethodGet, "/posts?pageNumber="+bad, "", "")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for pageNumber=%s, got %d", bad, rr.Code)
		}
	}

	count := serve(server, http.MethodGet, "/posts/count", "", "")
	if decodeBody[int64](t, count) != 4 {
		t.Fatalf("expected count 4, got %s", count.Body.String())
	}
}

func TestMetricsAndSwaggerAreServed(t *testing.T) {
	server := newTestServer()
	handler := server.Handler()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts", nil))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `quill_http_requests_total{method="GET",route="GET /posts",status="200"} 1`) {
		t.Fatalf("expected request counter, body=%s", rr.Body.String())
	}

	docs := httptest.NewRecorder()
	handler.ServeHTTP(docs, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if docs.Code != http.StatusOK || !strings.Contains(docs.Body.String(), "/posts/like/{id}") {
		t.Fatalf("expected swagger document, got %d", docs.Code)
	}
}
