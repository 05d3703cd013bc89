package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/voguemanic/voguemanic-backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AddToCart upserts a cart line keyed by (product, user). A repeated add
// increments the count and returns the snapshot as it was before the
// increment; a first add inserts the line with count 1.
func AddToCart(c echo.Context) error {
	email := c.Get("userEmail").(string)

	var line models.CartLine
	if err := c.Bind(&line); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if line.ProductID.IsZero() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Product ID is required"})
	}

	key := models.CartKey{ProductID: line.ProductID, UserEmail: email}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := CartLines.FindLine(ctx, key)
	if err == nil {
		if err := CartLines.IncrementLine(ctx, key); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update cart"})
		}
		return c.JSON(http.StatusOK, existing)
	}
	if err != mongo.ErrNoDocuments {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch cart"})
	}

	line.ID = primitive.NewObjectID()
	line.UserEmail = email
	line.Count = 1

	if err := CartLines.InsertLine(ctx, line); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add to cart"})
	}

	return c.JSON(http.StatusCreated, line)
}

// GetCart returns every line belonging to the authenticated user.
func GetCart(c echo.Context) error {
	email := c.Get("userEmail").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lines, err := CartLines.FindLines(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch cart"})
	}

	return c.JSON(http.StatusOK, lines)
}

// UpdateCartQuantity sets the count of an existing line. An unknown line is
// rejected rather than upserted, so no ownerless document can appear.
func UpdateCartQuantity(c echo.Context) error {
	email := c.Get("userEmail").(string)

	var req struct {
		ProductID primitive.ObjectID `json:"productId"`
		Quantity  int                `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	if req.Quantity < 1 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Quantity must be at least 1"})
	}

	key := models.CartKey{ProductID: req.ProductID, UserEmail: email}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	matched, err := CartLines.SetLineCount(ctx, key, req.Quantity)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update quantity"})
	}

	if !matched {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found in cart"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Quantity updated successfully"})
}

func RemoveFromCart(c echo.Context) error {
	email := c.Get("userEmail").(string)
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	key := models.CartKey{ProductID: productID, UserEmail: email}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	deleted, err := CartLines.DeleteLine(ctx, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to remove item"})
	}

	if !deleted {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found in cart"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Item removed from cart"})
}

// ClearCart empties the user's cart after checkout. Clearing an already
// empty cart still succeeds.
func ClearCart(c echo.Context) error {
	email := c.Get("userEmail").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := CartLines.ClearLines(ctx, email); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to clear cart"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Cart cleared"})
}
