package order

import (
	"context"
	"errors"

	"github.com/dnminh/fashionshop-backend/internal/types/account"
	"github.com/dnminh/fashionshop-backend/internal/types/order"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrDetailNotFound  = errors.New("order detail not found")
	ErrVariantNotFound = errors.New("product variant not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// DetailService manages order line items and their feedback.
type DetailService struct {
	details  DetailRepository
	orders   OrderRepository
	variants VariantRepository
}

func NewDetailService(details DetailRepository, orders OrderRepository, variants VariantRepository) *DetailService {
	return &DetailService{details: details, orders: orders, variants: variants}
}

type DetailCreateInput struct {
	OrderID   string  `json:"order_id"`
	VariantID string  `json:"variant_id"`
	UnitPrice float64 `json:"UnitPrice"`
	Quantity  int     `json:"Quantity"`
	Feedback  string  `json:"feedback_details"`
}

func (s *DetailService) Create(ctx context.Context, in DetailCreateInput, actor account.Actor) (*order.Detail, error) {
	o, err := s.orders.FindOrderByID(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !actor.CanActOn(o.AccountID.Hex()) {
		return nil, ErrForbidden
	}
	v, err := s.variants.FindVariantByID(ctx, in.VariantID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	d := &order.Detail{
		OrderID:   o.ID,
		VariantID: v.ID,
		UnitPrice: in.UnitPrice,
		Quantity:  in.Quantity,
		Feedback:  in.Feedback,
	}
	if err := s.details.CreateOrderDetail(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// List returns details visible to the actor, optionally narrowed to one
// order. Plain users only ever see details of their own orders.
func (s *DetailService) List(ctx context.Context, orderID string, actor account.Actor) ([]order.Detail, error) {
	var scope []primitive.ObjectID
	if !actor.Elevated() {
		ids, err := s.orders.ListOrderIDsByAccount(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		scope = ids
	}
	return s.details.ListOrderDetails(ctx, scope, orderID)
}

func (s *DetailService) GetByID(ctx context.Context, id string) (*order.Detail, error) {
	d, err := s.details.FindOrderDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDetailNotFound
		}
		return nil, err
	}
	return d, nil
}

// SearchFeedback lists details carrying real feedback text, filtered per
// order/variant/text, scoped to the actor's own orders for plain users.
func (s *DetailService) SearchFeedback(ctx context.Context, f order.DetailSearchFilter, actor account.Actor) ([]order.Detail, error) {
	if !actor.Elevated() {
		ids, err := s.orders.ListOrderIDsByAccount(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		f.OrderIDs = ids
	}
	return s.details.SearchOrderDetailFeedback(ctx, f)
}

type DetailUpdateInput struct {
	OrderID   *string  `json:"order_id"`
	VariantID *string  `json:"variant_id"`
	UnitPrice *float64 `json:"UnitPrice"`
	Quantity  *int     `json:"Quantity"`
	Feedback  *string  `json:"feedback_details"`
}

func (s *DetailService) Update(ctx context.Context, id string, in DetailUpdateInput, actor account.Actor) (*order.Detail, error) {
	d, err := s.details.FindOrderDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDetailNotFound
		}
		return nil, err
	}
	if err := s.authorizeDetail(ctx, d, actor); err != nil {
		return nil, err
	}

	if in.OrderID != nil {
		o, err := s.orders.FindOrderByID(ctx, *in.OrderID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrOrderNotFound
			}
			return nil, err
		}
		d.OrderID = o.ID
	}
	if in.VariantID != nil {
		v, err := s.variants.FindVariantByID(ctx, *in.VariantID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrVariantNotFound
			}
			return nil, err
		}
		d.VariantID = v.ID
	}
	if in.UnitPrice != nil {
		d.UnitPrice = *in.UnitPrice
	}
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		d.Quantity = *in.Quantity
	}
	if in.Feedback != nil {
		d.Feedback = *in.Feedback
	}

	if err := s.details.UpdateOrderDetail(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DetailService) Delete(ctx context.Context, id string, actor account.Actor) error {
	d, err := s.details.FindOrderDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrDetailNotFound
		}
		return err
	}
	if err := s.authorizeDetail(ctx, d, actor); err != nil {
		return err
	}
	return s.details.DeleteOrderDetail(ctx, id)
}

func (s *DetailService) authorizeDetail(ctx context.Context, d *order.Detail, actor account.Actor) error {
	if actor.Elevated() {
		return nil
	}
	o, err := s.orders.FindOrderByID(ctx, d.OrderID.Hex())
	if err != nil {
		return err
	}
	if !actor.CanActOn(o.AccountID.Hex()) {
		return ErrForbidden
	}
	return nil
}
