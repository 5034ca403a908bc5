package favorite

import (
	"context"
	"errors"

	"github.com/dnminh/fashionshop-backend/internal/types/account"
	"github.com/dnminh/fashionshop-backend/internal/types/catalog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrAlreadyFavorite = errors.New("product already in favorites")
	ErrNotFound        = errors.New("favorite not found or not authorized")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidID       = errors.New("invalid product ID")
)

type FavoriteRepository interface {
	CreateFavorite(ctx context.Context, f *catalog.Favorite) error
	FindFavorite(ctx context.Context, accountID, productID string) (*catalog.Favorite, error)
	ListFavoritesByAccount(ctx context.Context, accountID string) ([]catalog.Favorite, error)
	DeleteFavoriteOwned(ctx context.Context, id, accountID string) error
}

type ProductRepository interface {
	FindProductByID(ctx context.Context, id string) (*catalog.Product, error)
}

type Service struct {
	favorites FavoriteRepository
	products  ProductRepository
}

func NewService(favorites FavoriteRepository, products ProductRepository) *Service {
	return &Service{favorites: favorites, products: products}
}

func (s *Service) Add(ctx context.Context, productID string, actor account.Actor) (*catalog.Favorite, error) {
	proID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}
	if _, err := s.products.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if _, err := s.favorites.FindFavorite(ctx, actor.ID, productID); err == nil {
		return nil, ErrAlreadyFavorite
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	accID, _ := primitive.ObjectIDFromHex(actor.ID)
	f := &catalog.Favorite{AccountID: accID, ProductID: proID}
	if err := s.favorites.CreateFavorite(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) List(ctx context.Context, actor account.Actor) ([]catalog.Favorite, error) {
	return s.favorites.ListFavoritesByAccount(ctx, actor.ID)
}

// Delete removes the favorite only when it belongs to the actor; anything
// else is reported as not found.
func (s *Service) Delete(ctx context.Context, id string, actor account.Actor) error {
	err := s.favorites.DeleteFavoriteOwned(ctx, id, actor.ID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
