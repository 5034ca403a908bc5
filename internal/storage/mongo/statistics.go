package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dnminh/fashionshop-backend/internal/statistic"
	"github.com/dnminh/fashionshop-backend/internal/types/account"
	"github.com/dnminh/fashionshop-backend/internal/types/order"
)

func (s *MongoStorage) CustomerStats(ctx context.Context) (*statistic.CustomerStats, error) {
	customers := bson.M{"role": account.RoleUser}
	total, err := s.accounts().CountDocuments(ctx, customers)
	if err != nil {
		return nil, err
	}
	byStatus := func(st account.Status) (int64, error) {
		return s.accounts().CountDocuments(ctx, bson.M{"role": account.RoleUser, "acc_status": st})
	}
	active, err := byStatus(account.StatusActive)
	if err != nil {
		return nil, err
	}
	inactive, err := byStatus(account.StatusInactive)
	if err != nil {
		return nil, err
	}
	suspended, err := byStatus(account.StatusSuspended)
	if err != nil {
		return nil, err
	}
	roles, err := s.countBy(ctx, s.accounts(), bson.M{}, "$role")
	if err != nil {
		return nil, err
	}
	return &statistic.CustomerStats{
		TotalCustomers:     total,
		ActiveCustomers:    active,
		InactiveCustomers:  inactive,
		SuspendedCustomers: suspended,
		RoleCounts:         roles,
	}, nil
}

func (s *MongoStorage) RevenueStats(ctx context.Context) (*statistic.RevenueStats, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"pay_status": order.PayPaid}},
		{"$group": bson.M{
			"_id":               nil,
			"totalRevenue":      bson.M{"$sum": "$totalPrice"},
			"averageOrderValue": bson.M{"$avg": "$totalPrice"},
		}},
	}
	cur, err := s.orders().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		TotalRevenue      float64 `bson:"totalRevenue"`
		AverageOrderValue float64 `bson:"averageOrderValue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	stats := &statistic.RevenueStats{}
	if len(rows) > 0 {
		stats.TotalRevenue = rows[0].TotalRevenue
		stats.AverageOrderValue = rows[0].AverageOrderValue
	}
	return stats, nil
}

func (s *MongoStorage) OrderStats(ctx context.Context) (*statistic.OrderStats, error) {
	total, err := s.orders().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	statuses, err := s.countBy(ctx, s.orders(), bson.M{}, "$order_status")
	if err != nil {
		return nil, err
	}
	payStatuses, err := s.countBy(ctx, s.orders(), bson.M{}, "$pay_status")
	if err != nil {
		return nil, err
	}
	shipping, err := s.countBy(ctx, s.orders(), bson.M{}, "$shipping_status")
	if err != nil {
		return nil, err
	}
	return &statistic.OrderStats{
		TotalOrders:          total,
		StatusCounts:         statuses,
		PayStatusCounts:      payStatuses,
		ShippingStatusCounts: shipping,
	}, nil
}

func (s *MongoStorage) RevenueByWeek(ctx context.Context) ([]statistic.RevenueByPeriod, error) {
	return s.revenueBy(ctx, bson.M{"$week": "$orderDate"})
}

func (s *MongoStorage) RevenueByMonth(ctx context.Context) ([]statistic.RevenueByPeriod, error) {
	return s.revenueBy(ctx, bson.M{"$month": "$orderDate"})
}

func (s *MongoStorage) RevenueByYear(ctx context.Context) ([]statistic.RevenueByPeriod, error) {
	return s.revenueBy(ctx, bson.M{"$year": "$orderDate"})
}

// revenueBy sums paid-order revenue grouped by a calendar expression over
// the order date.
func (s *MongoStorage) revenueBy(ctx context.Context, period bson.M) ([]statistic.RevenueByPeriod, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"pay_status": order.PayPaid}},
		{"$group": bson.M{
			"_id":          period,
			"totalRevenue": bson.M{"$sum": "$totalPrice"},
		}},
		{"$sort": bson.M{"_id": 1}},
	}
	cur, err := s.orders().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []statistic.RevenueByPeriod
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *MongoStorage) countBy(ctx context.Context, coll *mongo.Collection, match bson.M, key string) ([]statistic.CountByKey, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   key,
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
	}
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []statistic.CountByKey
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
