package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/voguemanic/voguemanic-backend/database"
	"github.com/voguemanic/voguemanic-backend/metrics"
	"github.com/voguemanic/voguemanic-backend/models"
	"github.com/voguemanic/voguemanic-backend/outbox"
	"github.com/voguemanic/voguemanic-backend/realtime"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Wired up in main before the server starts.
var (
	ResaleOutbox *outbox.Outbox
	Sockets      *realtime.Registry
)

// PlaceOrderRequest carries the order payload. The buyer identity comes
// from the bearer token; a userEmail in the body is ignored.
type PlaceOrderRequest struct {
	OrderID         string             `json:"orderId"`
	Items           []models.OrderItem `json:"items"`
	ShippingAddress string             `json:"shippingAddress"`
}

// PlaceOrder persists the order and responds as soon as the order document
// is saved. The per-item resale ownership transfers go through the outbox,
// which delivers them at least once in the background.
func PlaceOrder(c echo.Context) error {
	email := c.Get("userEmail").(string)

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	if req.OrderID == "" || len(req.Items) == 0 || req.ShippingAddress == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "orderId, items and shippingAddress are required"})
	}

	order := models.Order{
		ID:              primitive.NewObjectID(),
		OrderID:         req.OrderID,
		UserEmail:       email,
		Items:           req.Items,
		Status:          models.OrderStatusPlaced,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := database.DB.Collection(database.ConfirmedOrders).InsertOne(ctx, order)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to place order"})
	}

	metrics.OrdersPlaced.Inc()

	// Side effects are best-effort from the caller's perspective; a full
	// buffer is logged, never surfaced.
	if ResaleOutbox != nil {
		for _, item := range req.Items {
			if _, err := ResaleOutbox.Enqueue(email, item); err != nil {
				log.Printf("orders: resale transfer for product %s not enqueued: %v", item.ProductID.Hex(), err)
			}
		}
	}

	if Sockets != nil {
		Sockets.Publish(email, realtime.Event{
			Type:    "order.placed",
			OrderID: order.OrderID,
			Status:  string(order.Status),
		})
	}

	return c.JSON(http.StatusCreated, order)
}

// GetOrders lists the caller's orders projected down to ids and timestamps.
func GetOrders(c echo.Context) error {
	email := c.Get("userEmail").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	projection := bson.M{"orderId": 1, "createdAt": 1, "updatedAt": 1}
	cursor, err := database.DB.Collection(database.ConfirmedOrders).Find(
		ctx,
		bson.M{"userEmail": email},
		options.Find().SetProjection(projection),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}
	defer cursor.Close(ctx)

	orders := []models.OrderSummary{}
	if err := cursor.All(ctx, &orders); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}

	return c.JSON(http.StatusOK, orders)
}

type orderDetailResponse struct {
	models.Order
	models.OrderTotals
}

// GetOrderByID returns the order augmented with its derived totals. The
// totals are recomputed from the item snapshots on every read.
func GetOrderByID(c echo.Context) error {
	orderID := c.Param("orderId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := database.DB.Collection(database.ConfirmedOrders).FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch order"})
	}

	return c.JSON(http.StatusOK, orderDetailResponse{
		Order:       order,
		OrderTotals: models.ComputeTotals(order.Items),
	})
}

// CancelOrder sets the Cancelled status together with the optional reason
// and comments. Repeating the call re-sets the same status. Items are never
// touched.
func CancelOrder(c echo.Context) error {
	orderID := c.Param("orderId")

	var req struct {
		CancellationReason   string `json:"cancellationReason"`
		CancellationComments string `json:"cancellationComments"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection(database.ConfirmedOrders).UpdateOne(
		ctx,
		bson.M{"orderId": orderID},
		models.CancelUpdate(req.CancellationReason, req.CancellationComments, time.Now()),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to cancel order"})
	}

	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}

	metrics.OrdersCancelled.Inc()

	if email, ok := c.Get("userEmail").(string); ok && Sockets != nil {
		Sockets.Publish(email, realtime.Event{
			Type:    "order.cancelled",
			OrderID: orderID,
			Status:  string(models.OrderStatusCancelled),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Order cancelled"})
}
