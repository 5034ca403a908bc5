package cart

import "go.mongodb.org/mongo-driver/bson/primitive"

// Item keeps TotalPrice = Quantity * Price; the service recomputes it on
// every write.
type Item struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	AccountID  primitive.ObjectID `bson:"acc_id" json:"acc_id"`
	VariantID  primitive.ObjectID `bson:"variant_id" json:"variant_id"`
	Quantity   int                `bson:"pro_quantity" json:"pro_quantity"`
	Price      float64            `bson:"pro_price" json:"pro_price"`
	TotalPrice float64            `bson:"Total_price" json:"Total_price"`
}
