package memory

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	application "quill/contexts/community-content/content-service/application"
	"quill/contexts/community-content/content-service/domain/entities"
	domainerrors "quill/contexts/community-content/content-service/domain/errors"
	"quill/contexts/community-content/content-service/ports"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the content repositories for
// local runtime and tests. Insertion order is kept as the natural order.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]entities.Account
	accountOrder []string
	posts        map[string]entities.Post
	postOrder    []string
	comments     map[string]entities.Comment
	commentOrder []string
	categories   map[string]entities.Category
	categoryList []string
	now          func() time.Time
	logger       *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		accounts:   make(map[string]entities.Account),
		posts:      make(map[string]entities.Post),
		comments:   make(map[string]entities.Comment),
		categories: make(map[string]entities.Category),
		now:        func() time.Time { return time.Now().UTC() },
		logger:     application.ResolveLogger(logger),
	}
}

// SetClock pins Now for deterministic tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now().UTC()
}

func (s *Store) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateAccount(_ context.Context, account entities.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Email, account.Email) {
			return domainerrors.ErrAccountAlreadyExists
		}
	}
	s.accounts[account.AccountID] = account
	s.accountOrder = append(s.accountOrder, account.AccountID)
	return nil
}

func (s *Store) GetAccount(_ context.Context, accountID string) (entities.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return entities.Account{}, domainerrors.ErrAccountNotFound
	}
	return account, nil
}

func (s *Store) GetAccountByEmail(_ context.Context, email string) (entities.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts {
		if strings.EqualFold(account.Email, email) {
			return account, nil
		}
	}
	return entities.Account{}, domainerrors.ErrAccountNotFound
}

func (s *Store) ListAccounts(context.Context) ([]entities.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Account, 0, len(s.accountOrder))
	for _, id := range s.accountOrder {
		items = append(items, s.accounts[id])
	}
	return items, nil
}

func (s *Store) CountAccounts(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.accounts)), nil
}

func (s *Store) UpdateAccount(_ context.Context, accountID string, patch entities.AccountPatch) (entities.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return entities.Account{}, domainerrors.ErrAccountNotFound
	}
	account = patch.Apply(account)
	s.accounts[accountID] = account
	return account, nil
}

func (s *Store) DeleteAccount(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[accountID]; !ok {
		return domainerrors.ErrAccountNotFound
	}
	delete(s.accounts, accountID)
	s.accountOrder = without(s.accountOrder, accountID)
	return nil
}

func (s *Store) CreatePost(_ context.Context, post entities.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.Likes = slices.Clone(post.Likes)
	s.posts[post.PostID] = post
	s.postOrder = append(s.postOrder, post.PostID)
	return nil
}

func (s *Store) GetPost(_ context.Context, postID string) (entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[postID]
	if !ok {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return clonePost(post), nil
}

func (s *Store) ListPosts(_ context.Context, filter ports.PostListFilter) ([]entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []entities.Post
	for _, id := range s.postOrder {
		post := s.posts[id]
		if filter.Category != "" && post.Category != filter.Category {
			continue
		}
		if filter.OwnerID != "" && post.OwnerID != filter.OwnerID {
			continue
		}
		filtered = append(filtered, clonePost(post))
	}
	if filter.NewestFirst {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	start := min(max(filter.Skip, 0), len(filtered))
	end := len(filtered)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(filtered))
	}
	return filtered[start:end], nil
}

func (s *Store) CountPosts(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.posts)), nil
}

func (s *Store) UpdatePost(_ context.Context, postID string, patch entities.PostPatch) (entities.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	post = patch.Apply(post)
	s.posts[postID] = post
	return clonePost(post), nil
}

func (s *Store) AddLike(_ context.Context, postID string, accountID string) (entities.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	if !post.LikedBy(accountID) {
		post.Likes = append(slices.Clone(post.Likes), accountID)
		s.posts[postID] = post
	}
	return clonePost(post), nil
}

func (s *Store) RemoveLike(_ context.Context, postID string, accountID string) (entities.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	post.Likes = without(slices.Clone(post.Likes), accountID)
	s.posts[postID] = post
	return clonePost(post), nil
}

func (s *Store) DeletePost(_ context.Context, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return domainerrors.ErrPostNotFound
	}
	delete(s.posts, postID)
	s.postOrder = without(s.postOrder, postID)
	return nil
}

func (s *Store) DeletePostsByOwner(_ context.Context, ownerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, post := range s.posts {
		if post.OwnerID == ownerID {
			delete(s.posts, id)
			s.postOrder = without(s.postOrder, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) CreateComment(_ context.Context, comment entities.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.CommentID] = comment
	s.commentOrder = append(s.commentOrder, comment.CommentID)
	return nil
}

func (s *Store) GetComment(_ context.Context, commentID string) (entities.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comment, ok := s.comments[commentID]
	if !ok {
		return entities.Comment{}, domainerrors.ErrCommentNotFound
	}
	return comment, nil
}

func (s *Store) ListComments(_ context.Context, filter ports.CommentListFilter) ([]entities.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Comment, 0)
	for _, id := range s.commentOrder {
		comment := s.comments[id]
		if filter.PostID != "" && comment.PostID != filter.PostID {
			continue
		}
		items = append(items, comment)
	}
	return items, nil
}

func (s *Store) UpdateCommentText(_ context.Context, commentID string, text string, updatedAt time.Time) (entities.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[commentID]
	if !ok {
		return entities.Comment{}, domainerrors.ErrCommentNotFound
	}
	comment.Text = text
	comment.UpdatedAt = updatedAt
	s.comments[commentID] = comment
	return comment, nil
}

func (s *Store) DeleteComment(_ context.Context, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[commentID]; !ok {
		return domainerrors.ErrCommentNotFound
	}
	delete(s.comments, commentID)
	s.commentOrder = without(s.commentOrder, commentID)
	return nil
}

func (s *Store) DeleteCommentsByPost(_ context.Context, postID string) (int64, error) {
	return s.deleteCommentsWhere(func(c entities.Comment) bool { return c.PostID == postID }), nil
}

func (s *Store) DeleteCommentsByOwner(_ context.Context, ownerID string) (int64, error) {
	return s.deleteCommentsWhere(func(c entities.Comment) bool { return c.OwnerID == ownerID }), nil
}

func (s *Store) deleteCommentsWhere(match func(entities.Comment) bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, comment := range s.comments {
		if match(comment) {
			delete(s.comments, id)
			s.commentOrder = without(s.commentOrder, id)
			deleted++
		}
	}
	return deleted
}

func (s *Store) CreateCategory(_ context.Context, category entities.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.CategoryID] = category
	s.categoryList = append(s.categoryList, category.CategoryID)
	return nil
}

func (s *Store) ListCategories(context.Context) ([]entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Category, 0, len(s.categoryList))
	for _, id := range s.categoryList {
		items = append(items, s.categories[id])
	}
	return items, nil
}

func (s *Store) DeleteCategory(_ context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[categoryID]; !ok {
		return domainerrors.ErrCategoryNotFound
	}
	delete(s.categories, categoryID)
	s.categoryList = without(s.categoryList, categoryID)
	s.logger.Debug("category removed from memory store",
		"event", "content_memory_category_removed",
		"module", "community-content/content-service",
		"layer", "adapter",
		"category_id", categoryID,
	)
	return nil
}

func clonePost(post entities.Post) entities.Post {
	post.Likes = slices.Clone(post.Likes)
	if post.Likes == nil {
		post.Likes = []string{}
	}
	return post
}

func without(ids []string, target string) []string {
	return slices.DeleteFunc(ids, func(id string) bool { return id == target })
}
