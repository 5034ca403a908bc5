package order

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dnminh/fashionshop-backend/internal/types/account"
	"github.com/dnminh/fashionshop-backend/internal/types/order"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrForbidden        = errors.New("access denied")
	ErrInvalidAccountID = errors.New("invalid account ID")
	ErrInvalidPhone     = errors.New("phone number must be exactly 10 digits")
	ErrInvalidAddress   = errors.New("address is required")
	ErrInvalidPrice     = errors.New("total price cannot be negative")
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

type Service struct {
	orders   OrderRepository
	accounts AccountRepository
}

func NewService(orders OrderRepository, accounts AccountRepository) *Service {
	return &Service{orders: orders, accounts: accounts}
}

type CreateInput struct {
	AccountID      string               `json:"acc_id"`
	AddressReceive string               `json:"addressReceive"`
	Phone          string               `json:"phone"`
	TotalPrice     float64              `json:"totalPrice"`
	OrderStatus    order.OrderStatus    `json:"order_status"`
	PayStatus      order.PayStatus      `json:"pay_status"`
	ShippingStatus order.ShippingStatus `json:"shipping_status"`
	Feedback       string               `json:"feedback_order"`
}

func (s *Service) Create(ctx context.Context, in CreateInput, actor account.Actor) (*order.Order, error) {
	if !actor.CanActOn(in.AccountID) {
		return nil, ErrForbidden
	}
	accID, err := primitive.ObjectIDFromHex(in.AccountID)
	if err != nil {
		return nil, ErrInvalidAccountID
	}
	if _, err := s.accounts.FindAccountByID(ctx, in.AccountID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if in.AddressReceive == "" {
		return nil, ErrInvalidAddress
	}
	if !phonePattern.MatchString(in.Phone) {
		return nil, ErrInvalidPhone
	}
	if in.TotalPrice < 0 {
		return nil, ErrInvalidPrice
	}

	o := &order.Order{
		AccountID:      accID,
		OrderDate:      time.Now().UTC(),
		AddressReceive: in.AddressReceive,
		Phone:          in.Phone,
		TotalPrice:     in.TotalPrice,
		OrderStatus:    in.OrderStatus,
		PayStatus:      in.PayStatus,
		ShippingStatus: in.ShippingStatus,
		Feedback:       in.Feedback,
	}
	if o.OrderStatus == "" {
		o.OrderStatus = order.StatusPending
	}
	if o.PayStatus == "" {
		o.PayStatus = order.PayUnpaid
	}
	if o.ShippingStatus == "" {
		o.ShippingStatus = order.ShippingNotShipped
	}
	if o.Feedback == "" {
		o.Feedback = "None"
	}
	if err := s.orders.CreateOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, actor account.Actor) ([]order.Order, error) {
	if actor.Elevated() {
		return s.orders.ListOrders(ctx)
	}
	return s.orders.ListOrdersByAccount(ctx, actor.ID)
}

func (s *Service) Search(ctx context.Context, f order.SearchFilter, actor account.Actor) ([]order.Order, error) {
	if !actor.Elevated() {
		f.AccountID = actor.ID
	} else if f.AccountID != "" {
		if _, err := primitive.ObjectIDFromHex(f.AccountID); err != nil {
			return nil, ErrInvalidAccountID
		}
	}
	return s.orders.SearchOrders(ctx, f)
}

func (s *Service) GetByID(ctx context.Context, id string, actor account.Actor) (*order.Order, error) {
	o, err := s.orders.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !actor.CanActOn(o.AccountID.Hex()) {
		return nil, ErrForbidden
	}
	return o, nil
}

type UpdateInput struct {
	AccountID      *string               `json:"acc_id"`
	AddressReceive *string               `json:"addressReceive"`
	Phone          *string               `json:"phone"`
	TotalPrice     *float64              `json:"totalPrice"`
	OrderStatus    *order.OrderStatus    `json:"order_status"`
	PayStatus      *order.PayStatus      `json:"pay_status"`
	ShippingStatus *order.ShippingStatus `json:"shipping_status"`
	Feedback       *string               `json:"feedback_order"`
}

// Update mutates everything but the identity and creation timestamp. A
// changed owner is re-validated against the accounts collection.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput, actor account.Actor) (*order.Order, error) {
	o, err := s.orders.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !actor.CanActOn(o.AccountID.Hex()) {
		return nil, ErrForbidden
	}

	if in.AccountID != nil {
		accID, err := primitive.ObjectIDFromHex(*in.AccountID)
		if err != nil {
			return nil, ErrInvalidAccountID
		}
		if _, err := s.accounts.FindAccountByID(ctx, *in.AccountID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrAccountNotFound
			}
			return nil, err
		}
		o.AccountID = accID
	}
	if in.AddressReceive != nil {
		if *in.AddressReceive == "" {
			return nil, ErrInvalidAddress
		}
		o.AddressReceive = *in.AddressReceive
	}
	if in.Phone != nil {
		if !phonePattern.MatchString(*in.Phone) {
			return nil, ErrInvalidPhone
		}
		o.Phone = *in.Phone
	}
	if in.TotalPrice != nil {
		if *in.TotalPrice < 0 {
			return nil, ErrInvalidPrice
		}
		o.TotalPrice = *in.TotalPrice
	}
	if in.OrderStatus != nil {
		o.OrderStatus = *in.OrderStatus
	}
	if in.PayStatus != nil {
		o.PayStatus = *in.PayStatus
	}
	if in.ShippingStatus != nil {
		o.ShippingStatus = *in.ShippingStatus
	}
	if in.Feedback != nil {
		o.Feedback = *in.Feedback
	}

	if err := s.orders.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Delete(ctx context.Context, id string, actor account.Actor) error {
	o, err := s.orders.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrOrderNotFound
		}
		return err
	}
	if !actor.CanActOn(o.AccountID.Hex()) {
		return ErrForbidden
	}
	return s.orders.DeleteOrder(ctx, id)
}
