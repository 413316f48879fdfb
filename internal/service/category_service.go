package service

import (
	"context"
	"fmt"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"
	"catalog-api/internal/validation"

	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	validator    *validation.Validator
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	validator *validation.Validator,
	logger zerolog.Logger,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		validator:    validator,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// GetAll retrieves all categories with their products.
func (s *categoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	s.logger.Debug().Int("count", len(categories)).Msg("retrieved categories")

	return categories, nil
}

// GetByID retrieves a single category with its products.
func (s *categoryService) GetByID(ctx context.Context, id int) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("category_id", id).Msg("failed to get category by ID")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if category == nil {
		s.logger.Debug().Int("category_id", id).Msg("category not found")
		return nil, model.ErrCategoryNotFound
	}

	return category, nil
}

// Create validates and inserts a new category.
func (s *categoryService) Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		s.logger.Warn().Err(err).Msg("category create validation failed")
		return nil, err
	}

	category, err := s.categoryRepo.Create(ctx, req.CategoryName)
	if err != nil {
		s.logger.Error().Err(err).Str("category_name", req.CategoryName).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().Int("category_id", category.ID).Msg("category created successfully")

	return category, nil
}

// Update validates and renames an existing category.
func (s *categoryService) Update(ctx context.Context, id int, req *model.CategoryRequest) error {
	if err := s.validator.Validate(req); err != nil {
		s.logger.Warn().Err(err).Int("category_id", id).Msg("category update validation failed")
		return err
	}

	affected, err := s.categoryRepo.Update(ctx, id, req.CategoryName)
	if err != nil {
		s.logger.Error().Err(err).Int("category_id", id).Msg("failed to update category")
		return fmt.Errorf("failed to update category: %w", err)
	}

	if affected == 0 {
		s.logger.Debug().Int("category_id", id).Msg("category not found")
		return model.ErrCategoryNotFound
	}

	s.logger.Info().Int("category_id", id).Msg("category updated successfully")

	return nil
}

// Delete removes a category.
func (s *categoryService) Delete(ctx context.Context, id int) error {
	affected, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("category_id", id).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if affected == 0 {
		s.logger.Debug().Int("category_id", id).Msg("category not found")
		return model.ErrCategoryNotFound
	}

	s.logger.Info().Int("category_id", id).Msg("category deleted successfully")

	return nil
}
