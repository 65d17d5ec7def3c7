package mongoadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"quill/contexts/community-content/content-service/domain/entities"
	domainerrors "quill/contexts/community-content/content-service/domain/errors"
	"quill/contexts/community-content/content-service/ports"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	accountsCollection   = "users"
	postsCollection      = "posts"
	commentsCollection   = "comments"
	categoriesCollection = "categories"
)

// Repository implements the content repository ports on MongoDB. Documents
// are keyed by string UUIDs; likes live in an array maintained with
// $addToSet/$pull so membership stays unique.
type Repository struct {
	accounts   *mongo.Collection
	posts      *mongo.Collection
	comments   *mongo.Collection
	categories *mongo.Collection
	logger     *slog.Logger
}

func NewRepository(db *mongo.Database, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		accounts:   db.Collection(accountsCollection),
		posts:      db.Collection(postsCollection),
		comments:   db.Collection(commentsCollection),
		categories: db.Collection(categoriesCollection),
		logger:     logger,
	}
}

// EnsureIndexes creates the unique email index and the lookup indexes used
// by cascades.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		accountsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		postsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "postId", Value: 1}}},
			{Keys: bson.D{{Key: "user", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) CreateAccount(ctx context.Context, account entities.Account) error {
	if _, err := r.accounts.InsertOne(ctx, accountDocumentFromEntity(account)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrAccountAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetAccount(ctx context.Context, accountID string) (entities.Account, error) {
	return r.findAccount(ctx, bson.D{{Key: "_id", Value: accountID}})
}

func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (entities.Account, error) {
	return r.findAccount(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *Repository) findAccount(ctx context.Context, filter bson.D) (entities.Account, error) {
	var doc accountDocument
	if err := r.accounts.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.Account{}, domainerrors.ErrAccountNotFound
		}
		return entities.Account{}, err
	}
	return doc.toEntity(), nil
}

func (r *Repository) ListAccounts(ctx context.Context) ([]entities.Account, error) {
	cursor, err := r.accounts.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var docs []accountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]entities.Account, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toEntity())
	}
	return items, nil
}

func (r *Repository) CountAccounts(ctx context.Context) (int64, error) {
	return r.accounts.CountDocuments(ctx, bson.D{})
}

func (r *Repository) UpdateAccount(ctx context.Context, accountID string, patch entities.AccountPatch) (entities.Account, error) {
	set := bson.D{}
	if patch.Username != nil {
		set = append(set, bson.E{Key: "username", Value: *patch.Username})
	}
	if patch.PasswordHash != nil {
		set = append(set, bson.E{Key: "password", Value: *patch.PasswordHash})
	}
	if patch.Bio != nil {
		set = append(set, bson.E{Key: "bio", Value: *patch.Bio})
	}
	if patch.ProfilePhoto != nil {
		set = append(set, bson.E{Key: "profilePhoto", Value: imageDocument(*patch.ProfilePhoto)})
	}
	if patch.Privileged != nil {
		set = append(set, bson.E{Key: "isAdmin", Value: *patch.Privileged})
	}
	if !patch.UpdatedAt.IsZero() {
		set = append(set, bson.E{Key: "updatedAt", Value: patch.UpdatedAt.UTC()})
	}

	var doc accountDocument
	err := r.accounts.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: accountID}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.Account{}, domainerrors.ErrAccountNotFound
		}
		return entities.Account{}, err
	}
	return doc.toEntity(), nil
}

func (r *Repository) DeleteAccount(ctx context.Context, accountID string) error {
	result, err := r.accounts.DeleteOne(ctx, bson.D{{Key: "_id", Value: accountID}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrAccountNotFound
	}
	return nil
}

func (r *Repository) CreatePost(ctx context.Context, post entities.Post) error {
	_, err := r.posts.InsertOne(ctx, postDocumentFromEntity(post))
	return err
}

func (r *Repository) GetPost(ctx context.Context, postID string) (entities.Post, error) {
	var doc postDocument
	if err := r.posts.FindOne(ctx, bson.D{{Key: "_id", Value: postID}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.Post{}, domainerrors.ErrPostNotFound
		}
		return entities.Post{}, err
	}
	return doc.toEntity(), nil
}

// ListPosts leaves the sort unset unless NewestFirst is requested, so page
// and category listings follow the collection's natural order.
func (r *Repository) ListPosts(ctx context.Context, filter ports.PostListFilter) ([]entities.Post, error) {
	query := bson.D{}
	if filter.Category != "" {
		query = append(query, bson.E{Key: "category", Value: filter.Category})
	}
	if filter.OwnerID != "" {
		query = append(query, bson.E{Key: "user", Value: filter.OwnerID})
	}

	opts := options.Find()
	if filter.NewestFirst {
		opts = opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}
	if filter.Skip > 0 {
		opts = opts.SetSkip(int64(filter.Skip))
	}
	if filter.Limit > 0 {
		opts = opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.posts.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]entities.Post, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toEntity())
	}
	return items, nil
}

func (r *Repository) CountPosts(ctx context.Context) (int64, error) {
	return r.posts.CountDocuments(ctx, bson.D{})
}

func (r *Repository) UpdatePost(ctx context.Context, postID string, patch entities.PostPatch) (entities.Post, error) {
	set := bson.D{}
	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *patch.Category})
	}
	if patch.Image != nil {
		set = append(set, bson.E{Key: "image", Value: imageDocument(*patch.Image)})
	}
	if !patch.UpdatedAt.IsZero() {
		set = append(set, bson.E{Key: "updatedAt", Value: patch.UpdatedAt.UTC()})
	}
	return r.updatePost(ctx, postID, bson.D{{Key: "$set", Value: set}})
}

func (r *Repository) AddLike(ctx context.Context, postID string, accountID string) (entities.Post, error) {
	return r.updatePost(ctx, postID, bson.D{{Key: "$addToSet", Value: bson.D{{Key: "likes", Value: accountID}}}})
}

func (r *Repository) RemoveLike(ctx context.Context, postID string, accountID string) (entities.Post, error) {
	return r.updatePost(ctx, postID, bson.D{{Key: "$pull", Value: bson.D{{Key: "likes", Value: accountID}}}})
}

func (r *Repository) updatePost(ctx context.Context, postID string, update bson.D) (entities.Post, error) {
	var doc postDocument
	err := r.posts.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: postID}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.Post{}, domainerrors.ErrPostNotFound
		}
		return entities.Post{}, err
	}
	return doc.toEntity(), nil
}

func (r *Repository) DeletePost(ctx context.Context, postID string) error {
	result, err := r.posts.DeleteOne(ctx, bson.D{{Key: "_id", Value: postID}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrPostNotFound
	}
	return nil
}

func (r *Repository) DeletePostsByOwner(ctx context.Context, ownerID string) (int64, error) {
	result, err := r.posts.DeleteMany(ctx, bson.D{{Key: "user", Value: ownerID}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *Repository) CreateComment(ctx context.Context, comment entities.Comment) error {
	_, err := r.comments.InsertOne(ctx, commentDocument{
		ID:        comment.CommentID,
		PostID:    comment.PostID,
		Text:      comment.Text,
		OwnerID:   comment.OwnerID,
		OwnerName: comment.OwnerName,
		CreatedAt: comment.CreatedAt.UTC(),
		UpdatedAt: comment.UpdatedAt.UTC(),
	})
	return err
}

func (r *Repository) GetComment(ctx context.Context, commentID string) (entities.Comment, error) {
	var doc commentDocument
	if err := r.comments.FindOne(ctx, bson.D{{Key: "_id", Value: commentID}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.Comment{}, domainerrors.ErrCommentNotFound
		}
		return entities.Comment{}, err
	}
	return doc.toEntity(), nil
}

func (r *Repository) ListComments(ctx context.Context, filter ports.CommentListFilter) ([]entities.Comment, error) {
	query := bson.D{}
	if filter.PostID != "" {
		query = append(query, bson.E{Key: "postId", Value: filter.PostID})
	}
	cursor, err := r.comments.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	var docs []commentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]entities.Comment, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateCommentText(ctx context.Context, commentID string, text string, updatedAt time.Time) (entities.Comment, error) {
	var doc commentDocument
	err := r.comments.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: commentID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "text", Value: text},
			{Key: "updatedAt", Value: updatedAt.UTC()},
		}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.Comment{}, domainerrors.ErrCommentNotFound
		}
		return entities.Comment{}, err
	}
	return doc.toEntity(), nil
}

func (r *Repository) DeleteComment(ctx context.Context, commentID string) error {
	result, err := r.comments.DeleteOne(ctx, bson.D{{Key: "_id", Value: commentID}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrCommentNotFound
	}
	return nil
}

func (r *Repository) DeleteCommentsByPost(ctx context.Context, postID string) (int64, error) {
	return r.deleteComments(ctx, bson.D{{Key: "postId", Value: postID}})
}

func (r *Repository) DeleteCommentsByOwner(ctx context.Context, ownerID string) (int64, error) {
	return r.deleteComments(ctx, bson.D{{Key: "user", Value: ownerID}})
}

func (r *Repository) deleteComments(ctx context.Context, filter bson.D) (int64, error) {
	result, err := r.comments.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	r.logger.Debug("comments deleted",
		"event", "content_mongo_comments_deleted",
		"module", "community-content/content-service",
		"layer", "adapter",
		"deleted", result.DeletedCount,
	)
	return result.DeletedCount, nil
}

func (r *Repository) CreateCategory(ctx context.Context, category entities.Category) error {
	_, err := r.categories.InsertOne(ctx, categoryDocument{
		ID:        category.CategoryID,
		Title:     category.Title,
		OwnerID:   category.OwnerID,
		CreatedAt: category.CreatedAt.UTC(),
	})
	return err
}

func (r *Repository) ListCategories(ctx context.Context) ([]entities.Category, error) {
	cursor, err := r.categories.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]entities.Category, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, categoryID string) error {
	result, err := r.categories.DeleteOne(ctx, bson.D{{Key: "_id", Value: categoryID}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrCategoryNotFound
	}
	return nil
}
