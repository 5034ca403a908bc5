package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dnminh/fashionshop-backend/internal/types/account"
)

func (s *MongoStorage) CreateAccount(ctx context.Context, a *account.Account) error {
	res, err := s.accounts().InsertOne(ctx, a)
	if err != nil {
		return err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStorage) FindAccountByID(ctx context.Context, id string) (*account.Account, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var a account.Account
	if err := s.accounts().FindOne(ctx, bson.M{"_id": objID}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *MongoStorage) FindAccountByUsername(ctx context.Context, username string) (*account.Account, error) {
	var a account.Account
	if err := s.accounts().FindOne(ctx, bson.M{"username": username}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *MongoStorage) FindAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	var a account.Account
	if err := s.accounts().FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *MongoStorage) FindAccountByUsernameOrEmail(ctx context.Context, username, email string) (*account.Account, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}}
	var a account.Account
	if err := s.accounts().FindOne(ctx, filter).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *MongoStorage) ListAccounts(ctx context.Context) ([]account.Account, error) {
	cur, err := s.accounts().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var accounts []account.Account
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *MongoStorage) UpdateAccount(ctx context.Context, a *account.Account) error {
	res, err := s.accounts().ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoStorage) DeleteAccount(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.accounts().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
