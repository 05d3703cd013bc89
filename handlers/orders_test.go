package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voguemanic/voguemanic-backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func asUser(email string) func(echo.Context) {
	return func(c echo.Context) {
		c.Set("userEmail", email)
	}
}

func TestPlaceOrderRejectsIncompleteRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no orderId", `{"items":[{"price":10}],"shippingAddress":"1 Main St"}`},
		{"no items", `{"orderId":"ORD-1","shippingAddress":"1 Main St"}`},
		{"empty items", `{"orderId":"ORD-1","items":[],"shippingAddress":"1 Main St"}`},
		{"no address", `{"orderId":"ORD-1","items":[{"price":10}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, PlaceOrder, tt.body, asUser("jane@example.com"))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

// The detail response must inline the stored order fields alongside the
// three derived amounts.
func TestOrderDetailResponseShape(t *testing.T) {
	order := models.Order{
		ID:        primitive.NewObjectID(),
		OrderID:   "ORD-9",
		UserEmail: "jane@example.com",
		Items: []models.OrderItem{
			{Price: 10, ShippingCost: 2},
			{Price: 5, ShippingCost: 1},
		},
		Status:    models.OrderStatusPlaced,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	raw, err := json.Marshal(orderDetailResponse{
		Order:       order,
		OrderTotals: models.ComputeTotals(order.Items),
	})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "ORD-9", decoded["orderId"])
	assert.Equal(t, "Placed", decoded["status"])
	assert.Equal(t, 15.0, decoded["totalAmount"])
	assert.Equal(t, 3.0, decoded["deliveryCharges"])
	assert.InDelta(t, 2.25, decoded["tax"], 1e-9)
	assert.Len(t, decoded["items"], 2)
}
