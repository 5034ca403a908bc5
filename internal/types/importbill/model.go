package importbill

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Bill struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CreateDate  time.Time          `bson:"create_date" json:"create_date"`
	TotalAmount float64            `bson:"total_amount" json:"total_amount"`
	ImageBill   string             `bson:"image_bill,omitempty" json:"image_bill,omitempty"`
}

type Detail struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BillID      primitive.ObjectID `bson:"bill_id" json:"bill_id"`
	VariantID   primitive.ObjectID `bson:"variant_id" json:"variant_id"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	ImportPrice float64            `bson:"import_price" json:"import_price"`
}

type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *float64
	MaxAmount *float64
}
