package queries

import (
	"context"

	"quill/contexts/community-content/content-service/domain/entities"
	"quill/contexts/community-content/content-service/ports"
)

type ListCommentsUseCase struct {
	Comments ports.CommentRepository
}

func (u ListCommentsUseCase) Execute(ctx context.Context) ([]entities.Comment, error) {
	return u.Comments.ListComments(ctx, ports.CommentListFilter{})
}

type ListCategoriesUseCase struct {
	Categories ports.CategoryRepository
}

func (u ListCategoriesUseCase) Execute(ctx context.Context) ([]entities.Category, error) {
	return u.Categories.ListCategories(ctx)
}
