package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "Placed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// TaxRate applies to the item subtotal of an order, not to delivery charges.
const TaxRate = 0.15

// OrderItem is a point-in-time snapshot of the purchased product. Catalog
// edits after purchase never change what an order shows.
type OrderItem struct {
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	ShippingCost float64            `bson:"shipping_cost" json:"shipping_cost"`
	Category     string             `bson:"category" json:"category"`
	ImageURL     string             `bson:"image_url" json:"image_url"`
}

type Order struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID              string             `bson:"orderId" json:"orderId"`
	UserEmail            string             `bson:"userEmail" json:"userEmail"`
	Items                []OrderItem        `bson:"items" json:"items"`
	Status               OrderStatus        `bson:"status" json:"status"`
	ShippingAddress      string             `bson:"shippingAddress" json:"shippingAddress"`
	CancellationReason   string             `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancellationComments string             `bson:"cancellationComments,omitempty" json:"cancellationComments,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderSummary is the list-view projection of an order.
type OrderSummary struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	OrderID   string             `bson:"orderId" json:"orderId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderTotals are derived on every read and never persisted.
type OrderTotals struct {
	TotalAmount     float64 `json:"totalAmount"`
	DeliveryCharges float64 `json:"deliveryCharges"`
	Tax             float64 `json:"tax"`
}

func ComputeTotals(items []OrderItem) OrderTotals {
	var t OrderTotals
	for _, item := range items {
		t.TotalAmount += item.Price
		t.DeliveryCharges += item.ShippingCost
	}
	t.Tax = t.TotalAmount * TaxRate
	return t
}

// CanTransition reports whether the ops status flow allows moving an order
// from one status to another. Delivered and Cancelled are terminal. Customer
// cancellation is handled separately and idempotently by the order handler.
func CanTransition(from, to OrderStatus) bool {
	switch from {
	case OrderStatusPlaced:
		return to == OrderStatusShipped || to == OrderStatusCancelled
	case OrderStatusShipped:
		return to == OrderStatusDelivered || to == OrderStatusCancelled
	default:
		return false
	}
}

// CancelUpdate builds the mutation applied when an order is cancelled. Only
// the status and cancellation metadata change; items are never touched.
func CancelUpdate(reason, comments string, now time.Time) bson.M {
	return bson.M{
		"$set": bson.M{
			"status":               OrderStatusCancelled,
			"cancellationReason":   reason,
			"cancellationComments": comments,
			"updatedAt":            now,
		},
	}
}
