package ports

import (
	"context"

	"github.com/swiftroute/logistics-api/internal/core/domain"
)

// ProductRepository is the catalog consulted by manifest validation.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySKU(ctx context.Context, sku string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// ProductInput carries a product create or update.
type ProductInput struct {
	SKU          string
	Name         string
	Category     string
	Stock        int
	UnitPrice    float64
	ReorderLevel int
}

// ProductService covers catalog administration.
type ProductService interface {
	CreateProduct(ctx context.Context, actor Actor, input ProductInput) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, actor Actor, productID string, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actor Actor, productID string) error
}
