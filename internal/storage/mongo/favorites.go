package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dnminh/fashionshop-backend/internal/types/catalog"
)

func (s *MongoStorage) CreateFavorite(ctx context.Context, f *catalog.Favorite) error {
	res, err := s.favorites().InsertOne(ctx, f)
	if err != nil {
		return err
	}
	f.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStorage) FindFavorite(ctx context.Context, accountID, productID string) (*catalog.Favorite, error) {
	accID, err := oid(accountID)
	if err != nil {
		return nil, err
	}
	proID, err := oid(productID)
	if err != nil {
		return nil, err
	}
	var f catalog.Favorite
	if err := s.favorites().FindOne(ctx, bson.M{"acc_id": accID, "pro_id": proID}).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *MongoStorage) ListFavoritesByAccount(ctx context.Context, accountID string) ([]catalog.Favorite, error) {
	accID, err := oid(accountID)
	if err != nil {
		return nil, err
	}
	cur, err := s.favorites().Find(ctx, bson.M{"acc_id": accID})
	if err != nil {
		return nil, err
	}
	var favorites []catalog.Favorite
	if err := cur.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// DeleteFavoriteOwned removes a favorite only when it belongs to the given
// account, so ownership is enforced by the delete filter itself.
func (s *MongoStorage) DeleteFavoriteOwned(ctx context.Context, id, accountID string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}
	accID, err := oid(accountID)
	if err != nil {
		return err
	}
	res, err := s.favorites().DeleteOne(ctx, bson.M{"_id": objID, "acc_id": accID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
