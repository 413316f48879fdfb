package service

import (
	"context"
	"fmt"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"
	"catalog-api/internal/validation"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	validator   *validation.Validator
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	validator *validation.Validator,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		validator:   validator,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves all products with category and tags.
func (s *productService) GetAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product with category and tags.
func (s *productService) GetByID(ctx context.Context, id int) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create validates and inserts a new product, attaching any requested tags.
func (s *productService) Create(ctx context.Context, req *model.ProductCreateRequest) (*model.Product, error) {
	if err := s.validator.Validate(req); err != nil {
		s.logger.Warn().Err(err).Msg("product create validation failed")
		return nil, err
	}

	stock := model.DefaultStock
	if req.Stock != nil {
		stock = *req.Stock
	}

	product := &model.Product{
		ProductName: req.ProductName,
		Price:       *req.Price,
		Stock:       stock,
		CategoryID:  req.CategoryID,
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_name", req.ProductName).Msg("failed to create product")
		return nil, err
	}

	if len(req.TagIDs) > 0 {
		tagIDs := dedupeTagIDs(req.TagIDs)
		if err := s.productRepo.CreateProductTags(ctx, created.ID, tagIDs); err != nil {
			s.logger.Error().
				Err(err).
				Int("product_id", created.ID).
				Int("tag_count", len(tagIDs)).
				Msg("failed to attach tags to new product")
			return nil, err
		}
	}

	s.logger.Info().Int("product_id", created.ID).Msg("product created successfully")

	return created, nil
}

// Update applies a partial update and reconciles tag associations when the
// request carries tag ids.
func (s *productService) Update(ctx context.Context, id int, req *model.ProductUpdateRequest) error {
	if err := s.validator.Validate(req); err != nil {
		s.logger.Warn().Err(err).Int("product_id", id).Msg("product update validation failed")
		return err
	}

	affected, err := s.productRepo.Update(ctx, id, req)
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", id).Msg("failed to update product")
		return err
	}

	if affected == 0 {
		s.logger.Debug().Int("product_id", id).Msg("product not found")
		return model.ErrProductNotFound
	}

	if len(req.TagIDs) > 0 {
		if err := s.reconcileProductTags(ctx, id, req.TagIDs); err != nil {
			return err
		}
	}

	s.logger.Info().Int("product_id", id).Msg("product updated successfully")

	return nil
}

// reconcileProductTags makes the product's tag set equal the requested set.
// The associations are always read fresh; the insert and delete run
// concurrently since they touch disjoint rows, and both are awaited. There is
// no transaction around the pair: one side can land without the other on
// failure, and concurrent updates to the same product race last-write-wins.
func (s *productService) reconcileProductTags(ctx context.Context, productID int, requested []int) error {
	current, err := s.productRepo.GetProductTags(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", productID).Msg("failed to load current tag associations")
		return err
	}

	toAdd, toRemove := reconcileTags(current, requested)
	if len(toAdd) == 0 && len(toRemove) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.productRepo.CreateProductTags(gctx, productID, toAdd)
	})
	g.Go(func() error {
		return s.productRepo.DeleteProductTags(gctx, toRemove)
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().
			Err(err).
			Int("product_id", productID).
			Int("to_add", len(toAdd)).
			Int("to_remove", len(toRemove)).
			Msg("tag reconciliation failed")
		return err
	}

	s.logger.Debug().
		Int("product_id", productID).
		Int("added", len(toAdd)).
		Int("removed", len(toRemove)).
		Msg("tag associations reconciled")

	return nil
}

// Delete removes a product together with its join rows.
func (s *productService) Delete(ctx context.Context, id int) error {
	affected, err := s.productRepo.DeleteWithTags(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if affected == 0 {
		s.logger.Debug().Int("product_id", id).Msg("product not found")
		return model.ErrProductNotFound
	}

	s.logger.Info().Int("product_id", id).Msg("product deleted successfully")

	return nil
}
