package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/swiftroute/logistics-api/internal/core/domain"
	"github.com/swiftroute/logistics-api/internal/core/ports"
)

// ProductService covers catalog administration. The catalog backs the
// manifest validation performed by the shipment registry.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) CreateProduct(ctx context.Context, actor ports.Actor, input ports.ProductInput) (*domain.Product, error) {
	if !domain.Allowed(actor.Role, domain.ActionManageProducts) {
		return nil, domain.ErrNotAuthorized
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:           uuid.NewString(),
		SKU:          input.SKU,
		Name:         input.Name,
		Category:     input.Category,
		Stock:        input.Stock,
		UnitPrice:    input.UnitPrice,
		ReorderLevel: input.ReorderLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("sku", product.SKU).Str("actor", actor.ID).Msg("product created")
	return product, nil
}

func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return s.repo.FindBySKU(ctx, sku)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) UpdateProduct(ctx context.Context, actor ports.Actor, productID string, input ports.ProductInput) (*domain.Product, error) {
	if !domain.Allowed(actor.Role, domain.ActionManageProducts) {
		return nil, domain.ErrNotAuthorized
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.SKU = input.SKU
	product.Name = input.Name
	product.Category = input.Category
	product.Stock = input.Stock
	product.UnitPrice = input.UnitPrice
	product.ReorderLevel = input.ReorderLevel
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, actor ports.Actor, productID string) error {
	if !domain.Allowed(actor.Role, domain.ActionManageProducts) {
		return domain.ErrNotAuthorized
	}
	return s.repo.Delete(ctx, productID)
}
