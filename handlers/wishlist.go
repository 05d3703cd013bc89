package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/voguemanic/voguemanic-backend/config"
	"github.com/voguemanic/voguemanic-backend/database"
	"github.com/voguemanic/voguemanic-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// wishlistFilter scopes reads and deletes to the caller unless the legacy
// shared-wishlist mode is enabled, in which case every caller sees (and can
// delete) every line.
func wishlistFilter(email string, extra bson.M) bson.M {
	filter := bson.M{}
	for k, v := range extra {
		filter[k] = v
	}
	if config.GetEnvBool("WISHLIST_USER_SCOPED", true) {
		filter["userEmail"] = email
	}
	return filter
}

func AddToWishlist(c echo.Context) error {
	email := c.Get("userEmail").(string)

	var line models.WishlistLine
	if err := c.Bind(&line); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if line.ProductID.IsZero() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Product ID is required"})
	}

	collection := database.DB.Collection(database.Wishlists)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Writes always carry the owner, even in shared mode.
	filter := bson.M{"productId": line.ProductID, "userEmail": email}

	var existing models.WishlistLine
	err := collection.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		_, err = collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"count": 1}})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update wishlist"})
		}
		return c.JSON(http.StatusOK, existing)
	}
	if err != mongo.ErrNoDocuments {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wishlist"})
	}

	line.ID = primitive.NewObjectID()
	line.UserEmail = email
	line.Count = 1

	if _, err := collection.InsertOne(ctx, line); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add to wishlist"})
	}

	return c.JSON(http.StatusCreated, line)
}

func GetWishlist(c echo.Context) error {
	email := c.Get("userEmail").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection(database.Wishlists).Find(ctx, wishlistFilter(email, nil))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wishlist"})
	}
	defer cursor.Close(ctx)

	lines := []models.WishlistLine{}
	if err := cursor.All(ctx, &lines); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wishlist"})
	}

	return c.JSON(http.StatusOK, lines)
}

// UpdateWishlistQuantity sets the count of an existing line, mirroring the
// cart: an unknown line is rejected, never upserted.
func UpdateWishlistQuantity(c echo.Context) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection(database.Wishlists).UpdateOne(
		ctx,
		wishlistFilter(email, bson.M{"productId": req.ProductID}),
		bson.M{"$set": bson.M{"count": req.Quantity}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update quantity"})
	}

	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found in wishlist"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Quantity updated successfully"})
}

// ClearWishlist removes every line the caller can see; in the legacy shared
// mode that is the whole list. Clearing an empty wishlist still succeeds.
func ClearWishlist(c echo.Context) error {
	email := c.Get("userEmail").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := database.DB.Collection(database.Wishlists).DeleteMany(ctx, wishlistFilter(email, nil))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to clear wishlist"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Wishlist cleared"})
}

func RemoveFromWishlist(c echo.Context) error {
	email := c.Get("userEmail").(string)
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection(database.Wishlists).DeleteOne(
		ctx,
		wishlistFilter(email, bson.M{"productId": productID}),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to remove item"})
	}

	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found in wishlist"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Item removed from wishlist"})
}
