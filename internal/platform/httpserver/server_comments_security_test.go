package httpserver

import (
	"net/http"
	"testing"

	contenthttp "quill/contexts/community-content/content-service/transport/http"
)

func TestCommentOwnershipRules(t *testing.T) {
	server := newTestServer()
	alice := registerAndLogin(t, server, "alice", "alice@example.com")
	bob := registerAndLogin(t, server, "bob", "bob@example.com")
	admin := registerAdmin(t, server)
	post := createPost(t, server, alice.Token)

	created := serve(server, http.MethodPost, "/comments", bob.Token, `{"postId":"`+post.ID+`","text":"great shot"}`)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", created.Code, created.Body.String())
	}
	comment := decodeBody[contenthttp.CommentDTO](t, created)
	if comment.Username != "bob" || comment.User != bob.ID {
		t.Fatalf("unexpected comment author %+v", comment)
	}
	path := "/comments/" + comment.ID

	if rr := serve(server, http.MethodPut, path, alice.Token, `{"text":"edited"}`); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for post owner, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := serve(server, http.MethodPut, path, admin.Token, `{"text":"edited"}`); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := serve(server, http.MethodPut, path, bob.Token, `{"text":"edited"}`); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	if rr := serve(server, http.MethodGet, "/comments", bob.Token, ""); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 listing comments, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := serve(server, http.MethodDelete, path, alice.Token, ""); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 delete, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := serve(server, http.MethodDelete, path, admin.Token, ""); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 admin delete, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := serve(server, http.MethodDelete, path, admin.Token, ""); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 second delete, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	server := newTestServer()
	bob := registerAndLogin(t, server, "bob", "bob@example.com")

	rr := serve(server, http.MethodPost, "/comments", bob.Token, `{"postId":"6f1c2d4e-8a8b-4c1e-9d7a-0c5b6a4f3e21","text":"hello"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = serve(server, http.MethodPost, "/comments", bob.Token, `{"text":"hello"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCategoriesAreAdminManaged(t *testing.T) {
	server := newTestServer()
	user := registerAndLogin(t, server, "alice", "alice@example.com")
	admin := registerAdmin(t, server)

	if rr := serve(server, http.MethodPost, "/categories", user.Token, `{"title":"travel"}`); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	created := serve(server, http.MethodPost, "/categories", admin.Token, `{"title":"travel"}`)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", created.Code, created.Body.String())
	}
	category := decodeBody[contenthttp.CategoryDTO](t, created)

	list := serve(server, http.MethodGet, "/categories", "", "")
	if got := decodeBody[[]contenthttp.CategoryDTO](t, list); len(got) != 1 || got[0].Title != "travel" {
		t.Fatalf("unexpected categories %v", got)
	}

	if rr := serve(server, http.MethodDelete, "/categories/"+category.ID, user.Token, ""); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	deleted := serve(server, http.MethodDelete, "/categories/"+category.ID, admin.Token, "")
	if deleted.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", deleted.Code, deleted.Body.String())
	}
	if got := decodeBody[contenthttp.DeleteCategoryResponse](t, deleted).CategoryID; got != category.ID {
		t.Fatalf("expected category id %s, got %s", category.ID, got)
	}
}
