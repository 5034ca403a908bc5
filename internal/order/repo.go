package order

import (
	"context"

	"github.com/dnminh/fashionshop-backend/internal/types/account"
	"github.com/dnminh/fashionshop-backend/internal/types/catalog"
	"github.com/dnminh/fashionshop-backend/internal/types/order"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, o *order.Order) error
	FindOrderByID(ctx context.Context, id string) (*order.Order, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
	ListOrdersByAccount(ctx context.Context, accountID string) ([]order.Order, error)
	SearchOrders(ctx context.Context, f order.SearchFilter) ([]order.Order, error)
	UpdateOrder(ctx context.Context, o *order.Order) error
	DeleteOrder(ctx context.Context, id string) error
	ListOrderIDsByAccount(ctx context.Context, accountID string) ([]primitive.ObjectID, error)
}

type DetailRepository interface {
	CreateOrderDetail(ctx context.Context, d *order.Detail) error
	FindOrderDetailByID(ctx context.Context, id string) (*order.Detail, error)
	ListOrderDetails(ctx context.Context, orderScope []primitive.ObjectID, orderID string) ([]order.Detail, error)
	SearchOrderDetailFeedback(ctx context.Context, f order.DetailSearchFilter) ([]order.Detail, error)
	UpdateOrderDetail(ctx context.Context, d *order.Detail) error
	DeleteOrderDetail(ctx context.Context, id string) error
}

type AccountRepository interface {
	FindAccountByID(ctx context.Context, id string) (*account.Account, error)
}

type VariantRepository interface {
	FindVariantByID(ctx context.Context, id string) (*catalog.Variant, error)
}
