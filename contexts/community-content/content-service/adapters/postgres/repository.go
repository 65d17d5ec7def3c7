package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"quill/contexts/community-content/content-service/domain/entities"
	domainerrors "quill/contexts/community-content/content-service/domain/errors"
	"quill/contexts/community-content/content-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository implements every content repository port on one gorm handle.
// Natural order for posts is (created_at, post_id) ascending.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates or updates the content tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&accountModel{},
		&postModel{},
		&postLikeModel{},
		&commentModel{},
		&categoryModel{},
	)
}

func (r *Repository) CreateAccount(ctx context.Context, account entities.Account) error {
	row := accountModelFromEntity(account)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAccountAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetAccount(ctx context.Context, accountID string) (entities.Account, error) {
	return r.firstAccount(ctx, "account_id = ?", accountID)
}

func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (entities.Account, error) {
	return r.firstAccount(ctx, "email = ?", email)
}

func (r *Repository) firstAccount(ctx context.Context, query string, arg string) (entities.Account, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where(query, arg).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Account{}, domainerrors.ErrAccountNotFound
		}
		return entities.Account{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListAccounts(ctx context.Context) ([]entities.Account, error) {
	var rows []accountModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Account, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&accountModel{}).Count(&count).Error
	return count, err
}

func (r *Repository) UpdateAccount(ctx context.Context, accountID string, patch entities.AccountPatch) (entities.Account, error) {
	updates := map[string]any{}
	if patch.Username != nil {
		updates["username"] = *patch.Username
	}
	if patch.PasswordHash != nil {
		updates["password_hash"] = *patch.PasswordHash
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if patch.ProfilePhoto != nil {
		updates["photo_url"] = patch.ProfilePhoto.URL
		updates["photo_reference_id"] = patch.ProfilePhoto.ReferenceID
	}
	if patch.Privileged != nil {
		updates["is_admin"] = *patch.Privileged
	}
	if !patch.UpdatedAt.IsZero() {
		updates["updated_at"] = patch.UpdatedAt.UTC()
	}

	var row accountModel
	result := r.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("account_id = ?", accountID).
		Updates(updates)
	if result.Error != nil {
		return entities.Account{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Account{}, domainerrors.ErrAccountNotFound
	}
	return row.toEntity(), nil
}

func (r *Repository) DeleteAccount(ctx context.Context, accountID string) error {
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&accountModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAccountNotFound
	}
	return nil
}

func (r *Repository) CreatePost(ctx context.Context, post entities.Post) error {
	row := postModelFromEntity(post)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for _, accountID := range post.Likes {
			if err := insertLike(tx, post.PostID, accountID, post.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) GetPost(ctx context.Context, postID string) (entities.Post, error) {
	var row postModel
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Post{}, domainerrors.ErrPostNotFound
		}
		return entities.Post{}, err
	}
	likes, err := r.likesFor(ctx, []string{postID})
	if err != nil {
		return entities.Post{}, err
	}
	return row.toEntity(likes[postID]), nil
}

func (r *Repository) ListPosts(ctx context.Context, filter ports.PostListFilter) ([]entities.Post, error) {
	tx := r.db.WithContext(ctx).Model(&postModel{})
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}
	if filter.OwnerID != "" {
		tx = tx.Where("owner_id = ?", filter.OwnerID)
	}
	tx = applyPostOrder(tx, filter.NewestFirst)
	if filter.Skip > 0 {
		tx = tx.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var rows []postModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PostID)
	}
	likes, err := r.likesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]entities.Post, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity(likes[row.PostID]))
	}
	return items, nil
}

func (r *Repository) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&postModel{}).Count(&count).Error
	return count, err
}

func (r *Repository) UpdatePost(ctx context.Context, postID string, patch entities.PostPatch) (entities.Post, error) {
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Image != nil {
		updates["image_url"] = patch.Image.URL
		updates["image_reference_id"] = patch.Image.ReferenceID
	}
	if !patch.UpdatedAt.IsZero() {
		updates["updated_at"] = patch.UpdatedAt.UTC()
	}

	result := r.db.WithContext(ctx).
		Model(&postModel{}).
		Where("post_id = ?", postID).
		Updates(updates)
	if result.Error != nil {
		return entities.Post{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return r.GetPost(ctx, postID)
}

func (r *Repository) AddLike(ctx context.Context, postID string, accountID string) (entities.Post, error) {
	if _, err := r.GetPost(ctx, postID); err != nil {
		return entities.Post{}, err
	}
	if err := insertLike(r.db.WithContext(ctx), postID, accountID, time.Now().UTC()); err != nil {
		return entities.Post{}, err
	}
	return r.GetPost(ctx, postID)
}

func (r *Repository) RemoveLike(ctx context.Context, postID string, accountID string) (entities.Post, error) {
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND account_id = ?", postID, accountID).
		Delete(&postLikeModel{}).
		Error; err != nil {
		return entities.Post{}, err
	}
	return r.GetPost(ctx, postID)
}

func (r *Repository) DeletePost(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ?", postID).Delete(&postModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrPostNotFound
		}
		return tx.Where("post_id = ?", postID).Delete(&postLikeModel{}).Error
	})
}

func (r *Repository) DeletePostsByOwner(ctx context.Context, ownerID string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&postModel{}).Select("post_id").Where("owner_id = ?", ownerID)
		if err := tx.Where("post_id IN (?)", owned).Delete(&postLikeModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("owner_id = ?", ownerID).Delete(&postModel{})
		deleted = result.RowsAffected
		return result.Error
	})
	if err == nil {
		r.logger.Debug("owner posts deleted",
			"event", "content_postgres_owner_posts_deleted",
			"module", "community-content/content-service",
			"layer", "adapter",
			"owner_id", ownerID,
			"deleted", deleted,
		)
	}
	return deleted, err
}

func (r *Repository) CreateComment(ctx context.Context, comment entities.Comment) error {
	row := commentModelFromEntity(comment)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetComment(ctx context.Context, commentID string) (entities.Comment, error) {
	var row commentModel
	err := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Comment{}, domainerrors.ErrCommentNotFound
		}
		return entities.Comment{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListComments(ctx context.Context, filter ports.CommentListFilter) ([]entities.Comment, error) {
	tx := r.db.WithContext(ctx).Model(&commentModel{})
	if filter.PostID != "" {
		tx = tx.Where("post_id = ?", filter.PostID)
	}
	var rows []commentModel
	if err := tx.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Comment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateCommentText(ctx context.Context, commentID string, text string, updatedAt time.Time) (entities.Comment, error) {
	result := r.db.WithContext(ctx).
		Model(&commentModel{}).
		Where("comment_id = ?", commentID).
		Updates(map[string]any{
			"text":       text,
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return entities.Comment{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Comment{}, domainerrors.ErrCommentNotFound
	}
	return r.GetComment(ctx, commentID)
}

func (r *Repository) DeleteComment(ctx context.Context, commentID string) error {
	result := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Delete(&commentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCommentNotFound
	}
	return nil
}

func (r *Repository) DeleteCommentsByPost(ctx context.Context, postID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&commentModel{})
	return result.RowsAffected, result.Error
}

func (r *Repository) DeleteCommentsByOwner(ctx context.Context, ownerID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&commentModel{})
	return result.RowsAffected, result.Error
}

func (r *Repository) CreateCategory(ctx context.Context, category entities.Category) error {
	row := categoryModel{
		CategoryID: category.CategoryID,
		Title:      category.Title,
		OwnerID:    category.OwnerID,
		CreatedAt:  category.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListCategories(ctx context.Context) ([]entities.Category, error) {
	var rows []categoryModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Category, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, categoryID string) error {
	result := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Delete(&categoryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCategoryNotFound
	}
	return nil
}

func (r *Repository) likesFor(ctx context.Context, postIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var rows []postLikeModel
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("liked_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PostID] = append(out[row.PostID], row.AccountID)
	}
	return out, nil
}

func insertLike(tx *gorm.DB, postID string, accountID string, likedAt time.Time) error {
	row := postLikeModel{PostID: postID, AccountID: accountID, LikedAt: likedAt.UTC()}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "account_id"}},
		DoNothing: true,
	}).Create(&row).Error
}

func applyPostOrder(tx *gorm.DB, newestFirst bool) *gorm.DB {
	if newestFirst {
		return tx.
			Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "post_id"}, Desc: false})
	}
	return tx.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: false}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "post_id"}, Desc: false})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
