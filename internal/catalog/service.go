package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/dnminh/fashionshop-backend/internal/types/catalog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category name already exists")
	ErrCategoryName     = errors.New("category name is required")
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("product variant not found")
	ErrColorNotFound    = errors.New("color not found")
	ErrSizeNotFound     = errors.New("size not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrInvalidID        = errors.New("invalid ID")
)

type Service struct {
	categories CategoryRepository
	products   ProductRepository
	variants   VariantRepository
}

func NewService(categories CategoryRepository, products ProductRepository, variants VariantRepository) *Service {
	return &Service{categories: categories, products: products, variants: variants}
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*catalog.Category, error) {
	if name == "" {
		return nil, ErrCategoryName
	}
	if _, err := s.categories.FindCategoryByName(ctx, name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	c := &catalog.Category{Name: name}
	if err := s.categories.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *Service) GetCategory(ctx context.Context, id string) (*catalog.Category, error) {
	c, err := s.categories.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id, name string) (*catalog.Category, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		if other, err := s.categories.FindCategoryByName(ctx, name); err == nil && other.ID != c.ID {
			return nil, ErrCategoryExists
		} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		c.Name = name
	}
	if err := s.categories.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.categories.DeleteCategory(ctx, id)
}

type ProductInput struct {
	Name        string                `json:"pro_name"`
	Price       float64               `json:"pro_price"`
	ImageURL    string                `json:"imageURL"`
	Description string                `json:"description"`
	CategoryID  string                `json:"cat_id"`
	Status      catalog.ProductStatus `json:"status_product"`
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*catalog.Product, error) {
	catID, err := primitive.ObjectIDFromHex(in.CategoryID)
	if err != nil {
		return nil, ErrInvalidID
	}
	if _, err := s.categories.FindCategoryByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	p := &catalog.Product{
		Name:        in.Name,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Description: in.Description,
		CategoryID:  catID,
		Status:      in.Status,
		CreatedAt:   time.Now().UTC(),
	}
	if p.Status == "" {
		p.Status = catalog.ProductActive
	}
	if err := s.products.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.products.ListProducts(ctx)
}

func (s *Service) SearchProducts(ctx context.Context, f catalog.ProductFilter) ([]catalog.Product, error) {
	if f.CategoryID != "" {
		if _, err := primitive.ObjectIDFromHex(f.CategoryID); err != nil {
			return nil, ErrInvalidID
		}
	}
	return s.products.SearchProducts(ctx, f)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	p, err := s.products.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (*catalog.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != "" {
		catID, err := primitive.ObjectIDFromHex(in.CategoryID)
		if err != nil {
			return nil, ErrInvalidID
		}
		if _, err := s.categories.FindCategoryByID(ctx, in.CategoryID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		p.CategoryID = catID
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Price > 0 {
		p.Price = in.Price
	}
	if in.ImageURL != "" {
		p.ImageURL = in.ImageURL
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Status != "" {
		p.Status = in.Status
	}
	if err := s.products.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.products.DeleteProduct(ctx, id)
}

type VariantInput struct {
	ProductID string `json:"pro_id"`
	ColorID   string `json:"color_id"`
	SizeID    string `json:"size_id"`
	ImageID   string `json:"image_id"`
}

// CreateVariant validates every referenced entity before committing.
func (s *Service) CreateVariant(ctx context.Context, in VariantInput) (*catalog.Variant, error) {
	proID, err1 := primitive.ObjectIDFromHex(in.ProductID)
	colorID, err2 := primitive.ObjectIDFromHex(in.ColorID)
	sizeID, err3 := primitive.ObjectIDFromHex(in.SizeID)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, ErrInvalidID
	}
	if _, err := s.products.FindProductByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if _, err := s.variants.FindColorByID(ctx, in.ColorID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrColorNotFound
		}
		return nil, err
	}
	if _, err := s.variants.FindSizeByID(ctx, in.SizeID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSizeNotFound
		}
		return nil, err
	}

	v := &catalog.Variant{ProductID: proID, ColorID: colorID, SizeID: sizeID}
	if in.ImageID != "" {
		imgID, err := primitive.ObjectIDFromHex(in.ImageID)
		if err != nil {
			return nil, ErrInvalidID
		}
		if _, err := s.variants.FindImageByID(ctx, in.ImageID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrImageNotFound
			}
			return nil, err
		}
		v.ImageID = imgID
	}
	if err := s.variants.CreateVariant(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) ListVariants(ctx context.Context, f catalog.VariantFilter) ([]catalog.Variant, error) {
	for _, id := range []string{f.ProductID, f.ColorID, f.SizeID} {
		if id == "" {
			continue
		}
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			return nil, ErrInvalidID
		}
	}
	return s.variants.ListVariants(ctx, f)
}

func (s *Service) GetVariant(ctx context.Context, id string) (*catalog.Variant, error) {
	v, err := s.variants.FindVariantByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *Service) UpdateVariant(ctx context.Context, id string, in VariantInput) (*catalog.Variant, error) {
	v, err := s.GetVariant(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.ProductID != "" {
		proID, err := primitive.ObjectIDFromHex(in.ProductID)
		if err != nil {
			return nil, ErrInvalidID
		}
		if _, err := s.products.FindProductByID(ctx, in.ProductID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		v.ProductID = proID
	}
	if in.ColorID != "" {
		colorID, err := primitive.ObjectIDFromHex(in.ColorID)
		if err != nil {
			return nil, ErrInvalidID
		}
		if _, err := s.variants.FindColorByID(ctx, in.ColorID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrColorNotFound
			}
			return nil, err
		}
		v.ColorID = colorID
	}
	if in.SizeID != "" {
		sizeID, err := primitive.ObjectIDFromHex(in.SizeID)
		if err != nil {
			return nil, ErrInvalidID
		}
		if _, err := s.variants.FindSizeByID(ctx, in.SizeID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrSizeNotFound
			}
			return nil, err
		}
		v.SizeID = sizeID
	}
	if in.ImageID != "" {
		imgID, err := primitive.ObjectIDFromHex(in.ImageID)
		if err != nil {
			return nil, ErrInvalidID
		}
		if _, err := s.variants.FindImageByID(ctx, in.ImageID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrImageNotFound
			}
			return nil, err
		}
		v.ImageID = imgID
	}
	if err := s.variants.UpdateVariant(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) DeleteVariant(ctx context.Context, id string) error {
	if _, err := s.GetVariant(ctx, id); err != nil {
		return err
	}
	return s.variants.DeleteVariant(ctx, id)
}
