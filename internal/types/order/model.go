package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

type PayStatus string

const (
	PayUnpaid PayStatus = "unpaid"
	PayPaid   PayStatus = "paid"
	PayFailed PayStatus = "failed"
)

type ShippingStatus string

const (
	ShippingNotShipped ShippingStatus = "not_shipped"
	ShippingInTransit  ShippingStatus = "in_transit"
	ShippingDelivered  ShippingStatus = "delivered"
)

type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	AccountID      primitive.ObjectID `bson:"acc_id" json:"acc_id"`
	OrderDate      time.Time          `bson:"orderDate" json:"orderDate"`
	AddressReceive string             `bson:"addressReceive" json:"addressReceive"`
	Phone          string             `bson:"phone" json:"phone"`
	TotalPrice     float64            `bson:"totalPrice" json:"totalPrice"`
	OrderStatus    OrderStatus        `bson:"order_status" json:"order_status"`
	PayStatus      PayStatus          `bson:"pay_status" json:"pay_status"`
	ShippingStatus ShippingStatus     `bson:"shipping_status" json:"shipping_status"`
	Feedback       string             `bson:"feedback_order" json:"feedback_order"`
}

type Detail struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderID   primitive.ObjectID `bson:"order_id" json:"order_id"`
	VariantID primitive.ObjectID `bson:"variant_id" json:"variant_id"`
	UnitPrice float64            `bson:"UnitPrice" json:"UnitPrice"`
	Quantity  int                `bson:"Quantity" json:"Quantity"`
	Feedback  string             `bson:"feedback_details,omitempty" json:"feedback_details,omitempty"`
}

// SearchFilter is the best-effort order search grammar: explicit field
// filters plus a free-text token matched against status fields, address,
// phone, a literal id and a YYYY-MM-DD day range.
type SearchFilter struct {
	AccountID      string
	OrderStatus    string
	PayStatus      string
	ShippingStatus string
	DateFrom       *time.Time
	DateTo         *time.Time
	MinPrice       *float64
	MaxPrice       *float64
	Query          string
}

// DetailSearchFilter narrows order-detail feedback listings.
type DetailSearchFilter struct {
	OrderIDs  []primitive.ObjectID
	OrderID   string
	VariantID string
	Feedback  string
	Query     string
}
