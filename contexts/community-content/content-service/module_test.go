package contentservice_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	contentservice "quill/contexts/community-content/content-service"
	"quill/contexts/community-content/content-service/application/commands"
	domainerrors "quill/contexts/community-content/content-service/domain/errors"
	httptransport "quill/contexts/community-content/content-service/transport/http"
	credential "quill/contexts/identity-access/credential-service"
	identityv1 "quill/contracts/identity/v1"
	"quill/internal/platform/validation"

	"github.com/stretchr/testify/require"
)

func newModule(t *testing.T) contentservice.Module {
	t.Helper()
	credentials, err := credential.NewInMemoryModule("test-secret", nil)
	require.NoError(t, err)
	return contentservice.NewInMemoryModule(credentials.Credentials, validation.New(), nil)
}

func register(t *testing.T, module contentservice.Module, username string, email string) identityv1.Principal {
	t.Helper()
	ctx := context.Background()
	_, err := module.Handler.RegisterHandler(ctx, httptransport.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	login, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{Email: email, Password: "password123"})
	require.NoError(t, err)
	return identityv1.Principal{AccountID: login.ID, Privileged: login.IsAdmin}
}

func createPost(t *testing.T, module contentservice.Module, actor identityv1.Principal, path string) httptransport.PostDTO {
	t.Helper()
	post, err := module.Handler.CreatePostHandler(context.Background(), actor, path, "A title", "a long enough description", "travel")
	require.NoError(t, err)
	return post
}

func TestRegisterAndLogin(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()

	resp, err := module.Handler.RegisterHandler(ctx, httptransport.RegisterRequest{
		Username: "alice",
		Email:    " Alice@Example.com ",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Message)

	_, err = module.Handler.RegisterHandler(ctx, httptransport.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.ErrorIs(t, err, domainerrors.ErrAccountAlreadyExists)

	login, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{Email: "ALICE@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	require.False(t, login.IsAdmin)
	require.Equal(t, contentservice.DefaultProfilePhotoURL, login.ProfilePhoto.URL)
	require.Empty(t, login.ProfilePhoto.PublicID)
}

func TestLoginAnswersUnknownEmailAndWrongPasswordAlike(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	register(t, module, "alice", "alice@example.com")

	_, wrongPassword := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{Email: "alice@example.com", Password: "password999"})
	_, unknownEmail := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{Email: "bob@example.com", Password: "password123"})

	require.ErrorIs(t, wrongPassword, domainerrors.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, domainerrors.ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestRegisterValidationMessage(t *testing.T) {
	module := newModule(t)
	_, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	require.EqualError(t, err, `"password" length must be at least 8 characters long`)
}

func TestPasswordsLongerThanBcryptAllowsAreRejected(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	tooLong := strings.Repeat("p", 80)

	_, err := module.Handler.RegisterHandler(ctx, httptransport.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: tooLong,
	})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	require.EqualError(t, err, `"password" length must be less than or equal to 72 bytes long`)

	alice := register(t, module, "alice", "alice@example.com")
	_, err = module.Handler.UpdateProfileHandler(ctx, alice.AccountID, httptransport.UpdateProfileRequest{Password: &tooLong})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = module.Handler.LoginHandler(ctx, httptransport.LoginRequest{Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
}

func TestProfileHidesPasswordAndListsPosts(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	alice := register(t, module, "alice", "alice@example.com")
	createPost(t, module, alice, "/tmp/one.png")

	profile, err := module.Handler.GetProfileHandler(ctx, alice.AccountID)
	require.NoError(t, err)
	require.Equal(t, "alice", profile.Username)
	require.Len(t, profile.Posts, 1)

	bio := "  hello there  "
	updated, err := module.Handler.UpdateProfileHandler(ctx, alice.AccountID, httptransport.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	require.Equal(t, "hello there", updated.Bio)
	require.Equal(t, "alice", updated.Username)

	count, err := module.Handler.CountAccountsHandler(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestCreatePostWithoutImageNeverUploads(t *testing.T) {
	module := newModule(t)
	alice := register(t, module, "alice", "alice@example.com")

	_, err := module.Handler.CreatePostHandler(context.Background(), alice, "", "A title", "a long enough description", "travel")
	require.ErrorIs(t, err, domainerrors.ErrImageRequired)
	require.Empty(t, module.Images.Uploads())
}

func TestCreatePostRemovesStagedFile(t *testing.T) {
	module := newModule(t)
	alice := register(t, module, "alice", "alice@example.com")

	post := createPost(t, module, alice, "/tmp/upload.png")
	require.Equal(t, alice.AccountID, post.User)
	require.Empty(t, post.Likes)
	require.True(t, module.Images.Has(post.Image.PublicID))
	require.Contains(t, module.Files.Removed(), "/tmp/upload.png")
}

func TestCreatePostUploadFailure(t *testing.T) {
	module := newModule(t)
	alice := register(t, module, "alice", "alice@example.com")
	module.Images.FailUploads(errors.New("store offline"))

	_, err := module.Handler.CreatePostHandler(context.Background(), alice, "/tmp/x.png", "A title", "a long enough description", "travel")
	require.ErrorIs(t, err, domainerrors.ErrUpstreamStoreFailure)

	count, err := module.Handler.CountPostsHandler(context.Background())
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestPostOwnershipRules(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	alice := register(t, module, "alice", "alice@example.com")
	bob := register(t, module, "bob", "bob@example.com")
	admin := register(t, module, "root", "root@example.com")
	_, err := module.Promote.Execute(ctx, commands.PromoteAccountCommand{Email: "root@example.com"})
	require.NoError(t, err)
	admin.Privileged = true

	post := createPost(t, module, alice, "/tmp/one.png")
	title := "New title"

	_, err = module.Handler.UpdatePostHandler(ctx, bob, post.ID, httptransport.UpdatePostRequest{Title: &title})
	require.ErrorIs(t, err, domainerrors.ErrNotPostOwner)
	_, err = module.Handler.UpdatePostHandler(ctx, admin, post.ID, httptransport.UpdatePostRequest{Title: &title})
	require.ErrorIs(t, err, domainerrors.ErrNotPostOwner)

	updated, err := module.Handler.UpdatePostHandler(ctx, alice, post.ID, httptransport.UpdatePostRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "New title", updated.Title)
	require.Equal(t, post.Description, updated.Description)

	_, err = module.Handler.DeletePostHandler(ctx, bob, post.ID)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
	resp, err := module.Handler.DeletePostHandler(ctx, admin, post.ID)
	require.NoError(t, err)
	require.Equal(t, post.ID, resp.PostID)
}

func TestToggleLikeTwiceRestoresLikes(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	alice := register(t, module, "alice", "alice@example.com")
	bob := register(t, module, "bob", "bob@example.com")
	post := createPost(t, module, alice, "/tmp/one.png")

	liked, err := module.Handler.ToggleLikeHandler(ctx, bob, post.ID)
	require.NoError(t, err)
	require.Equal(t, []string{bob.AccountID}, liked.Likes)

	unliked, err := module.Handler.ToggleLikeHandler(ctx, bob, post.ID)
	require.NoError(t, err)
	require.Empty(t, unliked.Likes)
}

func TestUpdatePostImageReleasesPrevious(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	alice := register(t, module, "alice", "alice@example.com")
	post := createPost(t, module, alice, "/tmp/one.png")

	updated, err := module.Handler.UpdatePostImageHandler(ctx, alice, post.ID, "/tmp/two.png")
	require.NoError(t, err)
	require.NotEqual(t, post.Image.PublicID, updated.Image.PublicID)
	require.False(t, module.Images.Has(post.Image.PublicID))
	require.True(t, module.Images.Has(updated.Image.PublicID))
}

func TestUpdatePostImageToleratesPreviousReleaseFailure(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	alice := register(t, module, "alice", "alice@example.com")
	post := createPost(t, module, alice, "/tmp/one.png")
	module.Images.FailDeletes(errors.New("store offline"))

	updated, err := module.Handler.UpdatePostImageHandler(ctx, alice, post.ID, "/tmp/two.png")
	require.NoError(t, err)
	require.NotEqual(t, post.Image.PublicID, updated.Image.PublicID)
	require.Equal(t, []string{post.Image.PublicID}, module.Images.Deletes())
	require.True(t, module.Images.Has(post.Image.PublicID))
	require.True(t, module.Images.Has(updated.Image.PublicID))
	require.Contains(t, module.Files.Removed(), "/tmp/two.png")

	detail, err := module.Handler.GetPostHandler(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, updated.Image.PublicID, detail.Image.PublicID)
}

func TestDeletePostCascadesComments(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	alice := register(t, module, "alice", "alice@example.com")
	bob := register(t, module, "bob", "bob@example.com")
	post := createPost(t, module, alice, "/tmp/one.png")
	other := createPost(t, module, alice, "/tmp/two.png")

	_, err := module.Handler.CreateCommentHandler(ctx, bob, httptransport.CreateCommentRequest{PostID: post.ID, Text: "nice shot"})
	require.NoError(t, err)
	kept, err := module.Handler.CreateCommentHandler(ctx, bob, httptransport.CreateCommentRequest{PostID: other.ID, Text: "also nice"})
	require.NoError(t, err)
	require.Equal(t, "bob", kept.Username)

	_, err = module.Handler.DeletePostHandler(ctx, alice, post.ID)
	require.NoError(t, err)

	_, err = module.Handler.GetPostHandler(ctx, post.ID)
	require.ErrorIs(t, err, domainerrors.ErrPostNotFound)
	require.False(t, module.Images.Has(post.Image.PublicID))

	comments, err := module.Handler.ListCommentsHandler(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, kept.ID, comments[0].ID)
}

func TestDeletePostToleratesImageReleaseFailure(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	alice := register(t, module, "alice", "alice@example.com")
	post := createPost(t, module, alice, "/tmp/one.png")
	module.Images.FailDeletes(errors.New("store offline"))

	_, err := module.Handler.DeletePostHandler(ctx, alice, post.ID)
	require.NoError(t, err)
	_, err = module.Handler.GetPostHandler(ctx, post.ID)
	require.ErrorIs(t, err, domainerrors.ErrPostNotFound)
}

func TestDeleteAccountCascade(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	alice := register(t, module, "alice", "alice@example.com")
	bob := register(t, module, "bob", "bob@example.com")

	photo, err := module.Handler.UploadProfilePhotoHandler(ctx, alice, "/tmp/me.png")
	require.NoError(t, err)
	post := createPost(t, module, alice, "/tmp/one.png")
	bobPost := createPost(t, module, bob, "/tmp/bob.png")
	_, err = module.Handler.CreateCommentHandler(ctx, alice, httptransport.CreateCommentRequest{PostID: bobPost.ID, Text: "hello bob"})
	require.NoError(t, err)
	bobComment, err := module.Handler.CreateCommentHandler(ctx, bob, httptransport.CreateCommentRequest{PostID: bobPost.ID, Text: "thanks"})
	require.NoError(t, err)

	_, err = module.Handler.DeleteProfileHandler(ctx, alice.AccountID)
	require.NoError(t, err)

	_, err = module.Handler.GetProfileHandler(ctx, alice.AccountID)
	require.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
	_, err = module.Handler.GetPostHandler(ctx, post.ID)
	require.ErrorIs(t, err, domainerrors.ErrPostNotFound)
	require.False(t, module.Images.Has(post.Image.PublicID))
	require.False(t, module.Images.Has(photo.ProfilePhoto.PublicID))
	require.True(t, module.Images.Has(bobPost.Image.PublicID))

	comments, err := module.Handler.ListCommentsHandler(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, bobComment.ID, comments[0].ID)
}

func TestDeleteAccountKeepsOtherAuthorsCommentsOnItsPosts(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	alice := register(t, module, "alice", "alice@example.com")
	bob := register(t, module, "bob", "bob@example.com")
	post := createPost(t, module, alice, "/tmp/one.png")

	_, err := module.Handler.CreateCommentHandler(ctx, alice, httptransport.CreateCommentRequest{PostID: post.ID, Text: "my own post"})
	require.NoError(t, err)
	bobComment, err := module.Handler.CreateCommentHandler(ctx, bob, httptransport.CreateCommentRequest{PostID: post.ID, Text: "great post"})
	require.NoError(t, err)

	_, err = module.Handler.DeleteProfileHandler(ctx, alice.AccountID)
	require.NoError(t, err)
	_, err = module.Handler.GetPostHandler(ctx, post.ID)
	require.ErrorIs(t, err, domainerrors.ErrPostNotFound)

	comments, err := module.Handler.ListCommentsHandler(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, bobComment.ID, comments[0].ID)
	require.Equal(t, post.ID, comments[0].PostID)
}

func TestDeleteAccountToleratesImageReleaseFailures(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	alice := register(t, module, "alice", "alice@example.com")
	bob := register(t, module, "bob", "bob@example.com")

	photo, err := module.Handler.UploadProfilePhotoHandler(ctx, alice, "/tmp/me.png")
	require.NoError(t, err)
	post := createPost(t, module, alice, "/tmp/one.png")
	bobPost := createPost(t, module, bob, "/tmp/bob.png")
	_, err = module.Handler.CreateCommentHandler(ctx, alice, httptransport.CreateCommentRequest{PostID: bobPost.ID, Text: "hello bob"})
	require.NoError(t, err)
	module.Images.FailDeletes(errors.New("store offline"))

	_, err = module.Handler.DeleteProfileHandler(ctx, alice.AccountID)
	require.NoError(t, err)

	require.ElementsMatch(t, []string{post.Image.PublicID, photo.ProfilePhoto.PublicID}, module.Images.Deletes())
	_, err = module.Handler.GetProfileHandler(ctx, alice.AccountID)
	require.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
	_, err = module.Handler.GetPostHandler(ctx, post.ID)
	require.ErrorIs(t, err, domainerrors.ErrPostNotFound)

	comments, err := module.Handler.ListCommentsHandler(ctx)
	require.NoError(t, err)
	require.Empty(t, comments)
}

func TestDeleteAccountNeverReleasesPlaceholder(t *testing.T) {
	module := newModule(t)
	alice := register(t, module, "alice", "alice@example.com")

	_, err := module.Handler.DeleteProfileHandler(context.Background(), alice.AccountID)
	require.NoError(t, err)
	require.Empty(t, module.Images.Deletes())
}

func TestProfilePhotoReplacementKeepsPlaceholder(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	alice := register(t, module, "alice", "alice@example.com")

	first, err := module.Handler.UploadProfilePhotoHandler(ctx, alice, "/tmp/a.png")
	require.NoError(t, err)
	require.Empty(t, module.Images.Deletes())

	second, err := module.Handler.UploadProfilePhotoHandler(ctx, alice, "/tmp/b.png")
	require.NoError(t, err)
	require.Equal(t, []string{first.ProfilePhoto.PublicID}, module.Images.Deletes())
	require.True(t, module.Images.Has(second.ProfilePhoto.PublicID))

	_, err = module.Handler.UploadProfilePhotoHandler(ctx, alice, "")
	require.ErrorIs(t, err, domainerrors.ErrFileRequired)
}

func TestListPostsModes(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	alice := register(t, module, "alice", "alice@example.com")
	for _, path := range []string{"/tmp/1.png", "/tmp/2.png", "/tmp/3.png", "/tmp/4.png"} {
		createPost(t, module, alice, path)
	}
	_, err := module.Handler.CreatePostHandler(ctx, alice, "/tmp/5.png", "Food post", "a long enough description", "food")
	require.NoError(t, err)

	firstPage, err := module.Handler.ListPostsHandler(ctx, "1", "")
	require.NoError(t, err)
	require.Len(t, firstPage, 3)
	secondPage, err := module.Handler.ListPostsHandler(ctx, "2", "food")
	require.NoError(t, err)
	require.Len(t, secondPage, 2)

	food, err := module.Handler.ListPostsHandler(ctx, "", "food")
	require.NoError(t, err)
	require.Len(t, food, 1)

	all, err := module.Handler.ListPostsHandler(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 5)

	for _, bad := range []string{"0", "-1", "abc"} {
		_, err := module.Handler.ListPostsHandler(ctx, bad, "")
		require.ErrorIs(t, err, domainerrors.ErrInvalidPageNumber, bad)
	}
}

func TestCommentOwnershipRules(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	alice := register(t, module, "alice", "alice@example.com")
	bob := register(t, module, "bob", "bob@example.com")
	admin := identityv1.Principal{AccountID: "admin-1", Privileged: true}
	post := createPost(t, module, alice, "/tmp/one.png")

	comment, err := module.Handler.CreateCommentHandler(ctx, bob, httptransport.CreateCommentRequest{PostID: post.ID, Text: "first!"})
	require.NoError(t, err)

	_, err = module.Handler.UpdateCommentHandler(ctx, alice, comment.ID, httptransport.UpdateCommentRequest{Text: "edited"})
	require.ErrorIs(t, err, domainerrors.ErrNotCommentOwner)
	_, err = module.Handler.UpdateCommentHandler(ctx, admin, comment.ID, httptransport.UpdateCommentRequest{Text: "edited"})
	require.ErrorIs(t, err, domainerrors.ErrNotCommentOwner)
	edited, err := module.Handler.UpdateCommentHandler(ctx, bob, comment.ID, httptransport.UpdateCommentRequest{Text: "edited"})
	require.NoError(t, err)
	require.Equal(t, "edited", edited.Text)

	_, err = module.Handler.DeleteCommentHandler(ctx, alice, comment.ID)
	require.ErrorIs(t, err, domainerrors.ErrCommentDeleteDenied)
	_, err = module.Handler.DeleteCommentHandler(ctx, admin, comment.ID)
	require.NoError(t, err)

	_, err = module.Handler.CreateCommentHandler(ctx, bob, httptransport.CreateCommentRequest{PostID: "missing", Text: "hello"})
	require.ErrorIs(t, err, domainerrors.ErrPostNotFound)
}

func TestCategories(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()
	admin := identityv1.Principal{AccountID: "admin-1", Privileged: true}

	category, err := module.Handler.CreateCategoryHandler(ctx, admin, httptransport.CreateCategoryRequest{Title: " travel "})
	require.NoError(t, err)
	require.Equal(t, "travel", category.Title)
	require.Equal(t, "admin-1", category.User)

	_, err = module.Handler.CreateCategoryHandler(ctx, admin, httptransport.CreateCategoryRequest{Title: ""})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	items, err := module.Handler.ListCategoriesHandler(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	resp, err := module.Handler.DeleteCategoryHandler(ctx, category.ID)
	require.NoError(t, err)
	require.Equal(t, category.ID, resp.CategoryID)
	_, err = module.Handler.DeleteCategoryHandler(ctx, category.ID)
	require.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}
