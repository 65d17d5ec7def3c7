package httpadapter

import (
	"context"
	"log/slog"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/application/commands"
	"quill/contexts/community-content/content-service/application/queries"
	httptransport "quill/contexts/community-content/content-service/transport/http"
	identityv1 "quill/contracts/identity/v1"
)

type Handler struct {
	Register           commands.RegisterAccountUseCase
	Login              commands.LoginUseCase
	UpdateProfile      commands.UpdateProfileUseCase
	UploadProfilePhoto commands.UploadProfilePhotoUseCase
	DeleteAccount      commands.DeleteAccountUseCase
	GetProfile         queries.GetAccountProfileUseCase
	ListProfiles       queries.ListAccountsUseCase
	CountAccounts      queries.CountAccountsUseCase

	CreatePost      commands.CreatePostUseCase
	UpdatePost      commands.UpdatePostUseCase
	UpdatePostImage commands.UpdatePostImageUseCase
	ToggleLike      commands.ToggleLikeUseCase
	DeletePost      commands.DeletePostUseCase
	ListPosts       queries.ListPostsUseCase
	GetPost         queries.GetPostUseCase
	CountPosts      queries.CountPostsUseCase

	CreateComment commands.CreateCommentUseCase
	UpdateComment commands.UpdateCommentUseCase
	DeleteComment commands.DeleteCommentUseCase
	ListComments  queries.ListCommentsUseCase

	CreateCategory commands.CreateCategoryUseCase
	DeleteCategory commands.DeleteCategoryUseCase
	ListCategories queries.ListCategoriesUseCase

	Logger *slog.Logger
}

// RegisterHandler godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body httptransport.RegisterRequest true "Registration payload"
// @Success 201 {object} httptransport.MessageResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /auth/register [post]
func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterRequest) (httptransport.MessageResponse, error) {
	_, err := h.Register.Execute(ctx, commands.RegisterAccountCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "you registered successfully, please login"}, nil
}

// LoginHandler godoc
// @Summary Log in and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body httptransport.LoginRequest true "Credentials"
// @Success 200 {object} httptransport.LoginResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /auth/login [post]
func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	result, err := h.Login.Execute(ctx, commands.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{
		ID:           result.Account.AccountID,
		IsAdmin:      result.Account.Privileged,
		ProfilePhoto: mapImage(result.Account.ProfilePhoto),
		Token:        result.Token,
	}, nil
}

// ListProfilesHandler godoc
// @Summary List all accounts with their posts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} httptransport.AccountDTO
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /users/profile [get]
func (h Handler) ListProfilesHandler(ctx context.Context) ([]httptransport.AccountDTO, error) {
	profiles, err := h.ListProfiles.Execute(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.AccountDTO, 0, len(profiles))
	for _, profile := range profiles {
		items = append(items, mapProfile(profile))
	}
	return items, nil
}

// GetProfileHandler godoc
// @Summary Get one account with its posts
// @Tags users
// @Produce json
// @Param id path string true "Account id"
// @Success 200 {object} httptransport.AccountDTO
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /users/profile/{id} [get]
func (h Handler) GetProfileHandler(ctx context.Context, accountID string) (httptransport.AccountDTO, error) {
	profile, err := h.GetProfile.Execute(ctx, accountID)
	if err != nil {
		return httptransport.AccountDTO{}, err
	}
	return mapProfile(profile), nil
}

// UpdateProfileHandler godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account id"
// @Param request body httptransport.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} httptransport.AccountDTO
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /users/profile/{id} [put]
func (h Handler) UpdateProfileHandler(ctx context.Context, accountID string, req httptransport.UpdateProfileRequest) (httptransport.AccountDTO, error) {
	account, err := h.UpdateProfile.Execute(ctx, commands.UpdateProfileCommand{
		AccountID: accountID,
		Username:  req.Username,
		Password:  req.Password,
		Bio:       req.Bio,
	})
	if err != nil {
		return httptransport.AccountDTO{}, err
	}
	return mapAccount(account), nil
}

// DeleteProfileHandler godoc
// @Summary Delete an account and everything it owns
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account id"
// @Success 200 {object} httptransport.MessageResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /users/profile/{id} [delete]
func (h Handler) DeleteProfileHandler(ctx context.Context, accountID string) (httptransport.MessageResponse, error) {
	if err := h.DeleteAccount.Execute(ctx, commands.DeleteAccountCommand{AccountID: accountID}); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "your profile has been deleted"}, nil
}

func (h Handler) CountAccountsHandler(ctx context.Context) (int64, error) {
	return h.CountAccounts.Execute(ctx)
}

// UploadProfilePhotoHandler godoc
// @Summary Replace the caller's profile photo
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Success 200 {object} httptransport.ProfilePhotoResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /users/profile/profile-photo-upload [post]
func (h Handler) UploadProfilePhotoHandler(ctx context.Context, actor identityv1.Principal, imagePath string) (httptransport.ProfilePhotoResponse, error) {
	image, err := h.UploadProfilePhoto.Execute(ctx, commands.UploadProfilePhotoCommand{
		AccountID: actor.AccountID,
		ImagePath: imagePath,
	})
	if err != nil {
		return httptransport.ProfilePhotoResponse{}, err
	}
	return httptransport.ProfilePhotoResponse{
		Message:      "your profile photo upload successfully",
		ProfilePhoto: mapImage(image),
	}, nil
}

// CreatePostHandler godoc
// @Summary Create a post with an image
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param category formData string true "Category title"
// @Success 201 {object} httptransport.PostDTO
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /posts [post]
func (h Handler) CreatePostHandler(
	ctx context.Context,
	actor identityv1.Principal,
	imagePath string,
	title string,
	description string,
	category string,
) (httptransport.PostDTO, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("create post request received",
		"event", "http_create_post_received",
		"module", "community-content/content-service",
		"layer", "transport",
		"account_id", actor.AccountID,
		"has_image", imagePath != "",
	)
	post, err := h.CreatePost.Execute(ctx, commands.CreatePostCommand{
		Actor:       actor,
		ImagePath:   imagePath,
		Title:       title,
		Description: description,
		Category:    category,
	})
	if err != nil {
		return httptransport.PostDTO{}, err
	}
	return mapPost(post), nil
}

// ListPostsHandler godoc
// @Summary List posts
// @Description pageNumber pages through posts in natural order; category filters; otherwise newest first.
// @Tags posts
// @Produce json
// @Param pageNumber query int false "1-based page number"
// @Param category query string false "Category title"
// @Success 200 {array} httptransport.PostDTO
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /posts [get]
func (h Handler) ListPostsHandler(ctx context.Context, pageNumber string, category string) ([]httptransport.PostDTO, error) {
	posts, err := h.ListPosts.Execute(ctx, queries.ListPostsQuery{PageNumber: pageNumber, Category: category})
	if err != nil {
		return nil, err
	}
	return mapPosts(posts), nil
}

func (h Handler) CountPostsHandler(ctx context.Context) (int64, error) {
	return h.CountPosts.Execute(ctx)
}

// GetPostHandler godoc
// @Summary Get a post with its comments
// @Tags posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} httptransport.PostDTO
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /posts/{id} [get]
func (h Handler) GetPostHandler(ctx context.Context, postID string) (httptransport.PostDTO, error) {
	detail, err := h.GetPost.Execute(ctx, postID)
	if err != nil {
		return httptransport.PostDTO{}, err
	}
	item := mapPost(detail.Post)
	item.Comments = mapComments(detail.Comments)
	return item, nil
}

func (h Handler) UpdatePostHandler(ctx context.Context, actor identityv1.Principal, postID string, req httptransport.UpdatePostRequest) (httptransport.PostDTO, error) {
	post, err := h.UpdatePost.Execute(ctx, commands.UpdatePostCommand{
		Actor:       actor,
		PostID:      postID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return httptransport.PostDTO{}, err
	}
	return mapPost(post), nil
}

func (h Handler) UpdatePostImageHandler(ctx context.Context, actor identityv1.Principal, postID string, imagePath string) (httptransport.PostDTO, error) {
	post, err := h.UpdatePostImage.Execute(ctx, commands.UpdatePostImageCommand{
		Actor:     actor,
		PostID:    postID,
		ImagePath: imagePath,
	})
	if err != nil {
		return httptransport.PostDTO{}, err
	}
	return mapPost(post), nil
}

func (h Handler) ToggleLikeHandler(ctx context.Context, actor identityv1.Principal, postID string) (httptransport.PostDTO, error) {
	post, err := h.ToggleLike.Execute(ctx, commands.ToggleLikeCommand{Actor: actor, PostID: postID})
	if err != nil {
		return httptransport.PostDTO{}, err
	}
	return mapPost(post), nil
}

// DeletePostHandler godoc
// @Summary Delete a post, its image and its comments
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {object} httptransport.DeletePostResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /posts/{id} [delete]
func (h Handler) DeletePostHandler(ctx context.Context, actor identityv1.Principal, postID string) (httptransport.DeletePostResponse, error) {
	if err := h.DeletePost.Execute(ctx, commands.DeletePostCommand{Actor: actor, PostID: postID}); err != nil {
		return httptransport.DeletePostResponse{}, err
	}
	return httptransport.DeletePostResponse{
		Message: "post has been deleted successfully",
		PostID:  postID,
	}, nil
}

func (h Handler) CreateCommentHandler(ctx context.Context, actor identityv1.Principal, req httptransport.CreateCommentRequest) (httptransport.CommentDTO, error) {
	comment, err := h.CreateComment.Execute(ctx, commands.CreateCommentCommand{
		Actor:  actor,
		PostID: req.PostID,
		Text:   req.Text,
	})
	if err != nil {
		return httptransport.CommentDTO{}, err
	}
	return mapComment(comment), nil
}

func (h Handler) ListCommentsHandler(ctx context.Context) ([]httptransport.CommentDTO, error) {
	comments, err := h.ListComments.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return mapComments(comments), nil
}

func (h Handler) UpdateCommentHandler(ctx context.Context, actor identityv1.Principal, commentID string, req httptransport.UpdateCommentRequest) (httptransport.CommentDTO, error) {
	comment, err := h.UpdateComment.Execute(ctx, commands.UpdateCommentCommand{
		Actor:     actor,
		CommentID: commentID,
		Text:      req.Text,
	})
	if err != nil {
		return httptransport.CommentDTO{}, err
	}
	return mapComment(comment), nil
}

func (h Handler) DeleteCommentHandler(ctx context.Context, actor identityv1.Principal, commentID string) (httptransport.MessageResponse, error) {
	if err := h.DeleteComment.Execute(ctx, commands.DeleteCommentCommand{Actor: actor, CommentID: commentID}); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "comment has been deleted"}, nil
}

func (h Handler) CreateCategoryHandler(ctx context.Context, actor identityv1.Principal, req httptransport.CreateCategoryRequest) (httptransport.CategoryDTO, error) {
	category, err := h.CreateCategory.Execute(ctx, commands.CreateCategoryCommand{Actor: actor, Title: req.Title})
	if err != nil {
		return httptransport.CategoryDTO{}, err
	}
	return mapCategory(category), nil
}

func (h Handler) ListCategoriesHandler(ctx context.Context) ([]httptransport.CategoryDTO, error) {
	categories, err := h.ListCategories.Execute(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		items = append(items, mapCategory(category))
	}
	return items, nil
}

func (h Handler) DeleteCategoryHandler(ctx context.Context, categoryID string) (httptransport.DeleteCategoryResponse, error) {
	if err := h.DeleteCategory.Execute(ctx, commands.DeleteCategoryCommand{CategoryID: categoryID}); err != nil {
		return httptransport.DeleteCategoryResponse{}, err
	}
	return httptransport.DeleteCategoryResponse{
		Message:    "Category has been deleted successfully",
		CategoryID: categoryID,
	}, nil
}
