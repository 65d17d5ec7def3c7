package queries

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/domain/entities"
	domainerrors "quill/contexts/community-content/content-service/domain/errors"
	"quill/contexts/community-content/content-service/ports"
)

const DefaultPageSize = 3

// modeBeyondLastPage marks a page whose offset does not fit in an int; no
// store could hold that many posts, so the page is empty.
const modeBeyondLastPage = "beyond_last_page"

// ListPostsQuery carries raw query-string values. PageNumber takes precedence
// over Category; with neither, posts are returned newest first.
type ListPostsQuery struct {
	PageNumber string
	Category   string
}

type ListPostsUseCase struct {
	Posts    ports.PostRepository
	PageSize int
	Logger   *slog.Logger
}

func (u ListPostsUseCase) Execute(ctx context.Context, query ListPostsQuery) ([]entities.Post, error) {
	logger := application.ResolveLogger(u.Logger)
	filter, mode, err := u.filterFor(query)
	if err != nil {
		return nil, err
	}
	if mode == modeBeyondLastPage {
		return []entities.Post{}, nil
	}

	posts, err := u.Posts.ListPosts(ctx, filter)
	if err != nil {
		logger.Error("list posts failed",
			"event", "content_list_posts_failed",
			"module", "community-content/content-service",
			"layer", "application",
			"mode", mode,
			"error", err.Error(),
		)
		return nil, err
	}
	logger.Debug("list posts completed",
		"event", "content_list_posts_completed",
		"module", "community-content/content-service",
		"layer", "application",
		"mode", mode,
		"items_count", len(posts),
	)
	return posts, nil
}

func (u ListPostsUseCase) filterFor(query ListPostsQuery) (ports.PostListFilter, string, error) {
	if raw := strings.TrimSpace(query.PageNumber); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return ports.PostListFilter{}, "", domainerrors.ErrInvalidPageNumber
		}
		size := u.pageSize()
		if page-1 > math.MaxInt/size {
			return ports.PostListFilter{}, modeBeyondLastPage, nil
		}
		return ports.PostListFilter{Skip: (page - 1) * size, Limit: size}, "page", nil
	}
	if category := strings.TrimSpace(query.Category); category != "" {
		return ports.PostListFilter{Category: category}, "category", nil
	}
	return ports.PostListFilter{NewestFirst: true}, "latest", nil
}

func (u ListPostsUseCase) pageSize() int {
	if u.PageSize <= 0 {
		return DefaultPageSize
	}
	return u.PageSize
}

// PostDetail is a post with the comments attached to it.
type PostDetail struct {
	Post     entities.Post
	Comments []entities.Comment
}

type GetPostUseCase struct {
	Posts    ports.PostRepository
	Comments ports.CommentRepository
}

func (u GetPostUseCase) Execute(ctx context.Context, postID string) (PostDetail, error) {
	post, err := u.Posts.GetPost(ctx, postID)
	if err != nil {
		return PostDetail{}, err
	}
	comments, err := u.Comments.ListComments(ctx, ports.CommentListFilter{PostID: postID})
	if err != nil {
		return PostDetail{}, err
	}
	return PostDetail{Post: post, Comments: comments}, nil
}

type CountPostsUseCase struct {
	Posts ports.PostRepository
}

func (u CountPostsUseCase) Execute(ctx context.Context) (int64, error) {
	return u.Posts.CountPosts(ctx)
}
