package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/voguemanic/voguemanic-backend/database"
	"github.com/voguemanic/voguemanic-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetResaleListings returns every item actively listed for sale, by any
// seller.
func GetResaleListings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection(database.ResaleProducts).Find(ctx, bson.M{"isResold": true})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch listings"})
	}
	defer cursor.Close(ctx)

	listings := []models.ResaleProduct{}
	if err := cursor.All(ctx, &listings); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch listings"})
	}

	return c.JSON(http.StatusOK, listings)
}

// GetMyResaleProducts filters the caller's own resale inventory by the
// resold flag: false is "owned, not listed", true is "listed".
func GetMyResaleProducts(c echo.Context) error {
	email := c.Get("userEmail").(string)

	var req struct {
		IsResold bool `json:"isResold"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection(database.ResaleProducts).Find(
		ctx,
		bson.M{"userEmail": email, "isResold": req.IsResold},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch resale products"})
	}
	defer cursor.Close(ctx)

	products := []models.ResaleProduct{}
	if err := cursor.All(ctx, &products); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch resale products"})
	}

	return c.JSON(http.StatusOK, products)
}

func GetResaleProduct(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.ResaleProduct
	err = database.DB.Collection(database.ResaleProducts).FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Resale product not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch resale product"})
	}

	return c.JSON(http.StatusOK, product)
}

// RelistProduct publishes an owned item for sale. The resold flag only ever
// moves to true here; nothing ever moves it back. The response body is
// intentionally empty.
func RelistProduct(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	var req struct {
		Description  string  `json:"description"`
		Price        float64 `json:"price"`
		ShippingCost float64 `json:"shipping_cost"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"description":   req.Description,
			"price":         req.Price,
			"shipping_cost": req.ShippingCost,
			"isResold":      true,
			"updatedAt":     time.Now(),
		},
	}

	result, err := database.DB.Collection(database.ResaleProducts).UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to relist product"})
	}

	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Resale product not found"})
	}

	return c.NoContent(http.StatusCreated)
}
