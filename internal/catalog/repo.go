package catalog

import (
	"context"

	"github.com/dnminh/fashionshop-backend/internal/types/catalog"
)

type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *catalog.Category) error
	FindCategoryByID(ctx context.Context, id string) (*catalog.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*catalog.Category, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	UpdateCategory(ctx context.Context, c *catalog.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, p *catalog.Product) error
	FindProductByID(ctx context.Context, id string) (*catalog.Product, error)
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	SearchProducts(ctx context.Context, f catalog.ProductFilter) ([]catalog.Product, error)
	UpdateProduct(ctx context.Context, p *catalog.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type VariantRepository interface {
	CreateVariant(ctx context.Context, v *catalog.Variant) error
	FindVariantByID(ctx context.Context, id string) (*catalog.Variant, error)
	ListVariants(ctx context.Context, f catalog.VariantFilter) ([]catalog.Variant, error)
	UpdateVariant(ctx context.Context, v *catalog.Variant) error
	DeleteVariant(ctx context.Context, id string) error
	FindColorByID(ctx context.Context, id string) (*catalog.Color, error)
	FindSizeByID(ctx context.Context, id string) (*catalog.Size, error)
	FindImageByID(ctx context.Context, id string) (*catalog.Image, error)
}
