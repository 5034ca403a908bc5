package catalog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name string             `bson:"cat_name" json:"cat_name"`
}

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"pro_name" json:"pro_name"`
	Price       float64            `bson:"pro_price" json:"pro_price"`
	ImageURL    string             `bson:"imageURL" json:"imageURL"`
	Description string             `bson:"description" json:"description"`
	CategoryID  primitive.ObjectID `bson:"cat_id" json:"cat_id"`
	Status      ProductStatus      `bson:"status_product" json:"status_product"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Variant ties a product to one sellable color/size/image combination.
type Variant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductID primitive.ObjectID `bson:"pro_id" json:"pro_id"`
	ColorID   primitive.ObjectID `bson:"color_id" json:"color_id"`
	SizeID    primitive.ObjectID `bson:"size_id" json:"size_id"`
	ImageID   primitive.ObjectID `bson:"image_id,omitempty" json:"image_id,omitempty"`
}

type Color struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name string             `bson:"color_name" json:"color_name"`
}

type Size struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name string             `bson:"size_name" json:"size_name"`
}

type Image struct {
	ID  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	URL string             `bson:"imageURL" json:"imageURL"`
}

type Favorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	AccountID primitive.ObjectID `bson:"acc_id" json:"acc_id"`
	ProductID primitive.ObjectID `bson:"pro_id" json:"pro_id"`
}

// ProductFilter drives product search; HasImage is a tri-state
// (nil = no filter).
type ProductFilter struct {
	CategoryID string
	Status     string
	MinPrice   *float64
	MaxPrice   *float64
	HasImage   *bool
	DateFrom   *time.Time
	DateTo     *time.Time
	Query      string
}

type VariantFilter struct {
	ProductID string
	ColorID   string
	SizeID    string
}
