package service

import (
	"context"
	"fmt"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"
	"catalog-api/internal/validation"

	"github.com/rs/zerolog"
)

// tagService implements TagService.
type tagService struct {
	tagRepo   repository.TagRepository
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(
	tagRepo repository.TagRepository,
	validator *validation.Validator,
	logger zerolog.Logger,
) TagService {
	return &tagService{
		tagRepo:   tagRepo,
		validator: validator,
		logger:    logger.With().Str("service", "tag").Logger(),
	}
}

// GetAll retrieves all tags with their products.
func (s *tagService) GetAll(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.tagRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all tags")
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}

	s.logger.Debug().Int("count", len(tags)).Msg("retrieved tags")

	return tags, nil
}

// GetByID retrieves a single tag with its products.
func (s *tagService) GetByID(ctx context.Context, id int) (*model.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("tag_id", id).Msg("failed to get tag by ID")
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	if tag == nil {
		s.logger.Debug().Int("tag_id", id).Msg("tag not found")
		return nil, model.ErrTagNotFound
	}

	return tag, nil
}

// Create validates and inserts a new tag.
func (s *tagService) Create(ctx context.Context, req *model.TagRequest) (*model.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		s.logger.Warn().Err(err).Msg("tag create validation failed")
		return nil, err
	}

	tag, err := s.tagRepo.Create(ctx, req.TagName)
	if err != nil {
		s.logger.Error().Err(err).Str("tag_name", req.TagName).Msg("failed to create tag")
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	s.logger.Info().Int("tag_id", tag.ID).Msg("tag created successfully")

	return tag, nil
}

// Update validates and renames an existing tag.
func (s *tagService) Update(ctx context.Context, id int, req *model.TagRequest) error {
	if err := s.validator.Validate(req); err != nil {
		s.logger.Warn().Err(err).Int("tag_id", id).Msg("tag update validation failed")
		return err
	}

	affected, err := s.tagRepo.Update(ctx, id, req.TagName)
	if err != nil {
		s.logger.Error().Err(err).Int("tag_id", id).Msg("failed to update tag")
		return fmt.Errorf("failed to update tag: %w", err)
	}

	if affected == 0 {
		s.logger.Debug().Int("tag_id", id).Msg("tag not found")
		return model.ErrTagNotFound
	}

	s.logger.Info().Int("tag_id", id).Msg("tag updated successfully")

	return nil
}

// Delete removes a tag.
func (s *tagService) Delete(ctx context.Context, id int) error {
	affected, err := s.tagRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("tag_id", id).Msg("failed to delete tag")
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	if affected == 0 {
		s.logger.Debug().Int("tag_id", id).Msg("tag not found")
		return model.ErrTagNotFound
	}

	s.logger.Info().Int("tag_id", id).Msg("tag deleted successfully")

	return nil
}
