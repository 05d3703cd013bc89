package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestComputeTotals(t *testing.T) {
	items := []OrderItem{
		{Price: 10, ShippingCost: 2},
		{Price: 5, ShippingCost: 1},
	}

	totals := ComputeTotals(items)

	assert.Equal(t, 15.0, totals.TotalAmount)
	assert.Equal(t, 3.0, totals.DeliveryCharges)
	assert.InDelta(t, 2.25, totals.Tax, 1e-9)
}

func TestComputeTotalsEmptyOrder(t *testing.T) {
	totals := ComputeTotals(nil)

	assert.Zero(t, totals.TotalAmount)
	assert.Zero(t, totals.DeliveryCharges)
	assert.Zero(t, totals.Tax)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"placed to shipped", OrderStatusPlaced, OrderStatusShipped, true},
		{"placed to cancelled", OrderStatusPlaced, OrderStatusCancelled, true},
		{"placed to delivered skips shipping", OrderStatusPlaced, OrderStatusDelivered, false},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, true},
		{"shipped back to placed", OrderStatusShipped, OrderStatusPlaced, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusShipped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

// Cancellation must only touch the status and cancellation metadata; the
// item snapshots stay exactly as they were at placement.
func TestCancelUpdateLeavesItemsAlone(t *testing.T) {
	now := time.Now()
	update := CancelUpdate("changed my mind", "ordered the wrong size", now)

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	require.Len(t, update, 1)

	assert.Equal(t, OrderStatusCancelled, set["status"])
	assert.Equal(t, "changed my mind", set["cancellationReason"])
	assert.Equal(t, "ordered the wrong size", set["cancellationComments"])
	assert.Equal(t, now, set["updatedAt"])

	assert.NotContains(t, set, "items")
	assert.NotContains(t, set, "orderId")
	assert.NotContains(t, set, "userEmail")
	assert.NotContains(t, set, "shippingAddress")
}
