package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStorage struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStorage(ctx context.Context, uri, dbName string) (*MongoStorage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	s := &MongoStorage{client: client, db: client.Database(dbName)}

	if err := s.client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	if err := s.ensureIndexes(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *MongoStorage) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := map[*mongo.Collection][]mongo.IndexModel{
		s.accounts(): {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		s.categories(): {
			{Keys: bson.D{{Key: "cat_name", Value: 1}}, Options: unique},
		},
		s.favorites(): {
			{Keys: bson.D{{Key: "acc_id", Value: 1}, {Key: "pro_id", Value: 1}}, Options: unique},
		},
		s.orders(): {
			{Keys: bson.D{{Key: "acc_id", Value: 1}}},
			{Keys: bson.D{{Key: "orderDate", Value: -1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func (s *MongoStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStorage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStorage) accounts() *mongo.Collection    { return s.db.Collection("accounts") }
func (s *MongoStorage) orders() *mongo.Collection      { return s.db.Collection("orders") }
func (s *MongoStorage) orderDetails() *mongo.Collection { return s.db.Collection("orderdetails") }
func (s *MongoStorage) categories() *mongo.Collection  { return s.db.Collection("categories") }
func (s *MongoStorage) products() *mongo.Collection    { return s.db.Collection("products") }
func (s *MongoStorage) variants() *mongo.Collection    { return s.db.Collection("productvariants") }
func (s *MongoStorage) colors() *mongo.Collection      { return s.db.Collection("productcolors") }
func (s *MongoStorage) sizes() *mongo.Collection       { return s.db.Collection("productsizes") }
func (s *MongoStorage) images() *mongo.Collection      { return s.db.Collection("productimages") }
func (s *MongoStorage) carts() *mongo.Collection       { return s.db.Collection("carts") }
func (s *MongoStorage) favorites() *mongo.Collection   { return s.db.Collection("favorites") }
func (s *MongoStorage) importBills() *mongo.Collection { return s.db.Collection("importbills") }
func (s *MongoStorage) importBillDetails() *mongo.Collection {
	return s.db.Collection("importbilldetails")
}

// oid parses a hex id; a malformed id behaves like a missing document, so
// callers surface not-found rather than an internal error.
func oid(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, mongo.ErrNoDocuments
	}
	return objID, nil
}
