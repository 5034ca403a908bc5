package storage

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dnminh/fashionshop-backend/internal/types/order"
)

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func (s *MongoStorage) CreateOrder(ctx context.Context, o *order.Order) error {
	res, err := s.orders().InsertOne(ctx, o)
	if err != nil {
		return err
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStorage) FindOrderByID(ctx context.Context, id string) (*order.Order, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var o order.Order
	if err := s.orders().FindOne(ctx, bson.M{"_id": objID}).Decode(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *MongoStorage) ListOrders(ctx context.Context) ([]order.Order, error) {
	return s.findOrders(ctx, bson.M{})
}

func (s *MongoStorage) ListOrdersByAccount(ctx context.Context, accountID string) ([]order.Order, error) {
	accID, err := oid(accountID)
	if err != nil {
		return nil, err
	}
	return s.findOrders(ctx, bson.M{"acc_id": accID})
}

func (s *MongoStorage) SearchOrders(ctx context.Context, f order.SearchFilter) ([]order.Order, error) {
	filter := bson.M{}
	if f.AccountID != "" {
		accID, err := oid(f.AccountID)
		if err != nil {
			return nil, err
		}
		filter["acc_id"] = accID
	}
	if f.OrderStatus != "" {
		filter["order_status"] = f.OrderStatus
	}
	if f.PayStatus != "" {
		filter["pay_status"] = f.PayStatus
	}
	if f.ShippingStatus != "" {
		filter["shipping_status"] = f.ShippingStatus
	}
	if f.DateFrom != nil || f.DateTo != nil {
		date := bson.M{}
		if f.DateFrom != nil {
			date["$gte"] = *f.DateFrom
		}
		if f.DateTo != nil {
			date["$lte"] = *f.DateTo
		}
		filter["orderDate"] = date
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["totalPrice"] = price
	}
	if f.Query != "" {
		filter["$or"] = freeTextClauses(f.Query)
	}
	return s.findOrders(ctx, filter)
}

// freeTextClauses matches a single search token against the text fields of an
// order, a literal id when the token is valid hex, and a whole calendar day
// when the token looks like YYYY-MM-DD.
func freeTextClauses(q string) bson.A {
	rx := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	clauses := bson.A{
		bson.M{"addressReceive": rx},
		bson.M{"phone": rx},
		bson.M{"order_status": rx},
		bson.M{"pay_status": rx},
		bson.M{"shipping_status": rx},
		bson.M{"feedback_order": rx},
	}
	if objID, err := primitive.ObjectIDFromHex(q); err == nil {
		clauses = append(clauses, bson.M{"_id": objID})
	}
	if dayPattern.MatchString(q) {
		if day, err := time.Parse("2006-01-02", q); err == nil {
			clauses = append(clauses, bson.M{"orderDate": bson.M{
				"$gte": day,
				"$lt":  day.Add(24 * time.Hour),
			}})
		}
	}
	return clauses
}

func (s *MongoStorage) findOrders(ctx context.Context, filter bson.M) ([]order.Order, error) {
	cur, err := s.orders().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var orders []order.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoStorage) UpdateOrder(ctx context.Context, o *order.Order) error {
	res, err := s.orders().ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoStorage) DeleteOrder(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.orders().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	if _, err := s.orderDetails().DeleteMany(ctx, bson.M{"order_id": objID}); err != nil {
		return err
	}
	return nil
}

func (s *MongoStorage) ListOrderIDsByAccount(ctx context.Context, accountID string) ([]primitive.ObjectID, error) {
	accID, err := oid(accountID)
	if err != nil {
		return nil, err
	}
	cur, err := s.orders().Find(ctx, bson.M{"acc_id": accID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// MarkOrderPaid flips pay_status to paid in a single conditional update so
// that concurrent gateway callbacks cannot both win. The returned bool
// reports whether this call applied the transition.
func (s *MongoStorage) MarkOrderPaid(ctx context.Context, id string) (bool, error) {
	return s.setPayStatus(ctx, id, order.PayPaid)
}

// MarkOrderPayFailed records a declined payment. A paid order is never
// downgraded.
func (s *MongoStorage) MarkOrderPayFailed(ctx context.Context, id string) (bool, error) {
	return s.setPayStatus(ctx, id, order.PayFailed)
}

func (s *MongoStorage) setPayStatus(ctx context.Context, id string, status order.PayStatus) (bool, error) {
	objID, err := oid(id)
	if err != nil {
		return false, err
	}
	res, err := s.orders().UpdateOne(ctx,
		bson.M{"_id": objID, "pay_status": bson.M{"$ne": order.PayPaid}},
		bson.M{"$set": bson.M{"pay_status": status}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *MongoStorage) CreateOrderDetail(ctx context.Context, d *order.Detail) error {
	res, err := s.orderDetails().InsertOne(ctx, d)
	if err != nil {
		return err
	}
	d.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStorage) FindOrderDetailByID(ctx context.Context, id string) (*order.Detail, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var d order.Detail
	if err := s.orderDetails().FindOne(ctx, bson.M{"_id": objID}).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *MongoStorage) ListOrderDetails(ctx context.Context, orderScope []primitive.ObjectID, orderID string) ([]order.Detail, error) {
	filter := bson.M{}
	if orderScope != nil {
		filter["order_id"] = bson.M{"$in": orderScope}
	}
	if orderID != "" {
		objID, err := oid(orderID)
		if err != nil {
			return nil, err
		}
		filter["order_id"] = objID
	}
	return s.findOrderDetails(ctx, filter)
}

func (s *MongoStorage) SearchOrderDetailFeedback(ctx context.Context, f order.DetailSearchFilter) ([]order.Detail, error) {
	filter := bson.M{"feedback_details": bson.M{"$exists": true, "$ne": ""}}
	if f.OrderIDs != nil {
		filter["order_id"] = bson.M{"$in": f.OrderIDs}
	}
	if f.OrderID != "" {
		objID, err := oid(f.OrderID)
		if err != nil {
			return nil, err
		}
		filter["order_id"] = objID
	}
	if f.VariantID != "" {
		objID, err := oid(f.VariantID)
		if err != nil {
			return nil, err
		}
		filter["variant_id"] = objID
	}
	if f.Feedback != "" {
		filter["feedback_details"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Feedback), Options: "i"}
	}
	if f.Query != "" {
		filter["feedback_details"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Query), Options: "i"}
	}
	return s.findOrderDetails(ctx, filter)
}

func (s *MongoStorage) findOrderDetails(ctx context.Context, filter bson.M) ([]order.Detail, error) {
	cur, err := s.orderDetails().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var details []order.Detail
	if err := cur.All(ctx, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *MongoStorage) UpdateOrderDetail(ctx context.Context, d *order.Detail) error {
	res, err := s.orderDetails().ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoStorage) DeleteOrderDetail(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.orderDetails().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
