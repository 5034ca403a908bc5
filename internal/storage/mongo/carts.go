package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dnminh/fashionshop-backend/internal/types/cart"
)

func (s *MongoStorage) CreateCartItem(ctx context.Context, item *cart.Item) error {
	res, err := s.carts().InsertOne(ctx, item)
	if err != nil {
		return err
	}
	item.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStorage) FindCartItemByID(ctx context.Context, id string) (*cart.Item, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var item cart.Item
	if err := s.carts().FindOne(ctx, bson.M{"_id": objID}).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MongoStorage) ListCartItems(ctx context.Context) ([]cart.Item, error) {
	return s.findCartItems(ctx, bson.M{})
}

func (s *MongoStorage) ListCartItemsByAccount(ctx context.Context, accountID string) ([]cart.Item, error) {
	accID, err := oid(accountID)
	if err != nil {
		return nil, err
	}
	return s.findCartItems(ctx, bson.M{"acc_id": accID})
}

func (s *MongoStorage) findCartItems(ctx context.Context, filter bson.M) ([]cart.Item, error) {
	cur, err := s.carts().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var items []cart.Item
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MongoStorage) UpdateCartItem(ctx context.Context, item *cart.Item) error {
	res, err := s.carts().ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoStorage) DeleteCartItem(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.carts().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
