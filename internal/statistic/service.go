package statistic

import "context"

// CountByKey is one aggregation bucket, e.g. a role or status with its
// document count.
type CountByKey struct {
	Key   string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// RevenueByPeriod groups paid-order revenue by a calendar unit (week,
// month or year of the order date).
type RevenueByPeriod struct {
	Period       int32   `bson:"_id" json:"_id"`
	TotalRevenue float64 `bson:"totalRevenue" json:"totalRevenue"`
}

type CustomerStats struct {
	TotalCustomers     int64        `json:"totalCustomers"`
	ActiveCustomers    int64        `json:"activeCustomers"`
	InactiveCustomers  int64        `json:"inactiveCustomers"`
	SuspendedCustomers int64        `json:"suspendedCustomers"`
	RoleCounts         []CountByKey `json:"roleCounts"`
}

type RevenueStats struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

type OrderStats struct {
	TotalOrders          int64        `json:"totalOrders"`
	StatusCounts         []CountByKey `json:"statusCounts"`
	PayStatusCounts      []CountByKey `json:"payStatusCounts"`
	ShippingStatusCounts []CountByKey `json:"shippingStatusCounts"`
}

// StatsRepository is implemented with aggregation pipelines over the
// accounts and orders collections.
type StatsRepository interface {
	CustomerStats(ctx context.Context) (*CustomerStats, error)
	RevenueStats(ctx context.Context) (*RevenueStats, error)
	OrderStats(ctx context.Context) (*OrderStats, error)
	RevenueByWeek(ctx context.Context) ([]RevenueByPeriod, error)
	RevenueByMonth(ctx context.Context) ([]RevenueByPeriod, error)
	RevenueByYear(ctx context.Context) ([]RevenueByPeriod, error)
}

type Service struct {
	repo StatsRepository
}

func NewService(repo StatsRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Customers(ctx context.Context) (*CustomerStats, error) {
	return s.repo.CustomerStats(ctx)
}

func (s *Service) Revenue(ctx context.Context) (*RevenueStats, error) {
	return s.repo.RevenueStats(ctx)
}

func (s *Service) Orders(ctx context.Context) (*OrderStats, error) {
	return s.repo.OrderStats(ctx)
}

func (s *Service) RevenueByWeek(ctx context.Context) ([]RevenueByPeriod, error) {
	return s.repo.RevenueByWeek(ctx)
}

func (s *Service) RevenueByMonth(ctx context.Context) ([]RevenueByPeriod, error) {
	return s.repo.RevenueByMonth(ctx)
}

func (s *Service) RevenueByYear(ctx context.Context) ([]RevenueByPeriod, error) {
	return s.repo.RevenueByYear(ctx)
}
