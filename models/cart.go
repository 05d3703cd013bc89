package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartKey identifies a cart line by the (product, user) pair. The pair is
// stored as two separate fields and queried together, so product ids and
// emails can never collide the way a concatenated string key could.
type CartKey struct {
	ProductID primitive.ObjectID
	UserEmail string
}

func (k CartKey) Filter() bson.M {
	return bson.M{"productId": k.ProductID, "userEmail": k.UserEmail}
}

// CartLine is one document per (user, product) pair. Re-adding the same
// product increments Count instead of creating a second document.
type CartLine struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	UserEmail    string             `bson:"userEmail" json:"userEmail"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	ShippingCost float64            `bson:"shipping_cost" json:"shipping_cost"`
	Category     string             `bson:"category" json:"category"`
	ImageURL     string             `bson:"image_url" json:"image_url"`
	Count        int                `bson:"count" json:"count"`
}

// Snapshot returns the order-item view of the line, one entry per line
// regardless of Count.
func (l CartLine) Snapshot() OrderItem {
	return OrderItem{
		ProductID:    l.ProductID,
		Name:         l.Name,
		Description:  l.Description,
		Price:        l.Price,
		ShippingCost: l.ShippingCost,
		Category:     l.Category,
		ImageURL:     l.ImageURL,
	}
}

type WishlistLine struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	UserEmail    string             `bson:"userEmail" json:"userEmail"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	ShippingCost float64            `bson:"shipping_cost" json:"shipping_cost"`
	Category     string             `bson:"category" json:"category"`
	ImageURL     string             `bson:"image_url" json:"image_url"`
	Count        int                `bson:"count" json:"count"`
}
