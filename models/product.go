package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	ShippingCost float64            `bson:"shipping_cost" json:"shipping_cost"`
	Rating       float64            `bson:"rating" json:"rating"`
	Category     string             `bson:"category" json:"category"`
	ImageURL     string             `bson:"image_url" json:"image_url"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ResaleProduct is a previously purchased item owned by a user. The document
// id is the id of the catalog product the item was bought as, so a repurchase
// can find and replace the current owner's record. IsResold=false means
// "owned, not listed"; true means "listed for sale". The flag only ever moves
// false -> true, via Relist.
type ResaleProduct struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	ShippingCost float64            `bson:"shipping_cost" json:"shipping_cost"`
	Rating       float64            `bson:"rating" json:"rating"`
	Category     string             `bson:"category" json:"category"`
	ImageURL     string             `bson:"image_url" json:"image_url"`
	UserEmail    string             `bson:"userEmail" json:"userEmail"`
	IsResold     bool               `bson:"isResold" json:"isResold"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DiscountLabel is appended to a product's name on every admin update. It is
// a storefront convention: edited products are surfaced as promotions.
const DiscountLabel = " DISCOUNTED"

func ApplyDiscountLabel(name string) string {
	return name + DiscountLabel
}
