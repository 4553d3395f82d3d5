package service

import (
	"context"
	"qna_board/internal/common"
	"qna_board/internal/domain/model"
	"qna_board/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *CategoryService) CreateCategory(ctx context.Context, actor *model.User, req CreateCategoryRequest) (*model.Category, error) {
	if req.Name == "" {
		return nil, common.Errorf("category name is required: %w", common.ErrBadRequest)
	}

	category := &model.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		CreatedByID: &actor.ID,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, common.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
