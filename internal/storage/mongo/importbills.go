package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dnminh/fashionshop-backend/internal/types/importbill"
)

func (s *MongoStorage) CreateImportBill(ctx context.Context, b *importbill.Bill) error {
	res, err := s.importBills().InsertOne(ctx, b)
	if err != nil {
		return err
	}
	b.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStorage) FindImportBillByID(ctx context.Context, id string) (*importbill.Bill, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var b importbill.Bill
	if err := s.importBills().FindOne(ctx, bson.M{"_id": objID}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *MongoStorage) ListImportBills(ctx context.Context) ([]importbill.Bill, error) {
	return s.findImportBills(ctx, bson.M{})
}

func (s *MongoStorage) SearchImportBills(ctx context.Context, f importbill.Filter) ([]importbill.Bill, error) {
	filter := bson.M{}
	if f.StartDate != nil || f.EndDate != nil {
		date := bson.M{}
		if f.StartDate != nil {
			date["$gte"] = *f.StartDate
		}
		if f.EndDate != nil {
			date["$lte"] = *f.EndDate
		}
		filter["create_date"] = date
	}
	if f.MinAmount != nil || f.MaxAmount != nil {
		amount := bson.M{}
		if f.MinAmount != nil {
			amount["$gte"] = *f.MinAmount
		}
		if f.MaxAmount != nil {
			amount["$lte"] = *f.MaxAmount
		}
		filter["total_amount"] = amount
	}
	return s.findImportBills(ctx, filter)
}

func (s *MongoStorage) findImportBills(ctx context.Context, filter bson.M) ([]importbill.Bill, error) {
	cur, err := s.importBills().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "create_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var bills []importbill.Bill
	if err := cur.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (s *MongoStorage) UpdateImportBill(ctx context.Context, b *importbill.Bill) error {
	res, err := s.importBills().ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoStorage) DeleteImportBill(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.importBills().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoStorage) CreateImportBillDetail(ctx context.Context, d *importbill.Detail) error {
	res, err := s.importBillDetails().InsertOne(ctx, d)
	if err != nil {
		return err
	}
	d.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStorage) FindImportBillDetailByID(ctx context.Context, id string) (*importbill.Detail, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var d importbill.Detail
	if err := s.importBillDetails().FindOne(ctx, bson.M{"_id": objID}).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *MongoStorage) ListImportBillDetailsByBill(ctx context.Context, billID string) ([]importbill.Detail, error) {
	objID, err := oid(billID)
	if err != nil {
		return nil, err
	}
	cur, err := s.importBillDetails().Find(ctx, bson.M{"bill_id": objID})
	if err != nil {
		return nil, err
	}
	var details []importbill.Detail
	if err := cur.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *MongoStorage) UpdateImportBillDetail(ctx context.Context, d *importbill.Detail) error {
	res, err := s.importBillDetails().ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoStorage) DeleteImportBillDetail(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.importBillDetails().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoStorage) DeleteImportBillDetailsByBill(ctx context.Context, billID string) error {
	objID, err := oid(billID)
	if err != nil {
		return err
	}
	_, err = s.importBillDetails().DeleteMany(ctx, bson.M{"bill_id": objID})
	return err
}
