package cart

import (
	"context"
	"errors"

	"github.com/dnminh/fashionshop-backend/internal/types/account"
	"github.com/dnminh/fashionshop-backend/internal/types/cart"
	"github.com/dnminh/fashionshop-backend/internal/types/catalog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrItemNotFound    = errors.New("cart item not found")
	ErrVariantNotFound = errors.New("product variant not found")
	ErrForbidden       = errors.New("access denied")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidID       = errors.New("invalid ID")
)

type CartRepository interface {
	CreateCartItem(ctx context.Context, item *cart.Item) error
	FindCartItemByID(ctx context.Context, id string) (*cart.Item, error)
	ListCartItems(ctx context.Context) ([]cart.Item, error)
	ListCartItemsByAccount(ctx context.Context, accountID string) ([]cart.Item, error)
	UpdateCartItem(ctx context.Context, item *cart.Item) error
	DeleteCartItem(ctx context.Context, id string) error
}

type VariantRepository interface {
	FindVariantByID(ctx context.Context, id string) (*catalog.Variant, error)
}

type Service struct {
	items    CartRepository
	variants VariantRepository
}

func NewService(items CartRepository, variants VariantRepository) *Service {
	return &Service{items: items, variants: variants}
}

type CreateInput struct {
	AccountID string  `json:"acc_id"`
	VariantID string  `json:"variant_id"`
	Quantity  int     `json:"pro_quantity"`
	Price     float64 `json:"pro_price"`
}

func (s *Service) Create(ctx context.Context, in CreateInput, actor account.Actor) (*cart.Item, error) {
	if !actor.CanActOn(in.AccountID) {
		return nil, ErrForbidden
	}
	accID, err := primitive.ObjectIDFromHex(in.AccountID)
	if err != nil {
		return nil, ErrInvalidID
	}
	v, err := s.variants.FindVariantByID(ctx, in.VariantID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item := &cart.Item{
		AccountID:  accID,
		VariantID:  v.ID,
		Quantity:   in.Quantity,
		Price:      in.Price,
		TotalPrice: float64(in.Quantity) * in.Price,
	}
	if err := s.items.CreateCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, actor account.Actor) ([]cart.Item, error) {
	if actor.Elevated() {
		return s.items.ListCartItems(ctx)
	}
	return s.items.ListCartItemsByAccount(ctx, actor.ID)
}

func (s *Service) GetByID(ctx context.Context, id string, actor account.Actor) (*cart.Item, error) {
	item, err := s.items.FindCartItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if !actor.CanActOn(item.AccountID.Hex()) {
		return nil, ErrForbidden
	}
	return item, nil
}

type UpdateInput struct {
	Quantity *int     `json:"pro_quantity"`
	Price    *float64 `json:"pro_price"`
}

// Update recomputes the line total from the effective quantity and price.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput, actor account.Actor) (*cart.Item, error) {
	item, err := s.GetByID(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		item.Quantity = *in.Quantity
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	item.TotalPrice = float64(item.Quantity) * item.Price
	if err := s.items.UpdateCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string, actor account.Actor) error {
	if _, err := s.GetByID(ctx, id, actor); err != nil {
		return err
	}
	return s.items.DeleteCartItem(ctx, id)
}
