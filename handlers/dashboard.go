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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetDashboard returns the caller's profile. A user whose profile document
// is missing gets an empty profile rather than an error; the next update
// creates it.
func GetDashboard(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)
	email := c.Get("userEmail").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var info models.UserInfo
	err := database.DB.Collection(database.UserInfos).FindOne(ctx, bson.M{"userId": userID}).Decode(&info)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusOK, models.UserInfo{
				UserID:         userID,
				Username:       models.UsernameFromEmail(email),
				Email:          email,
				OtherAddresses: []string{},
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch profile"})
	}

	return c.JSON(http.StatusOK, info)
}

// UpdateDashboard upserts the caller's profile.
func UpdateDashboard(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)

	var req struct {
		Username         string   `json:"username"`
		Bio              string   `json:"bio"`
		Email            string   `json:"email"`
		PrimaryAddress   string   `json:"primaryAddress"`
		SecondaryAddress string   `json:"secondaryAddress"`
		OtherAddresses   []string `json:"otherAddresses"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	if req.OtherAddresses == nil {
		req.OtherAddresses = []string{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"username":         req.Username,
			"bio":              req.Bio,
			"email":            req.Email,
			"primaryAddress":   req.PrimaryAddress,
			"secondaryAddress": req.SecondaryAddress,
			"otherAddresses":   req.OtherAddresses,
		},
	}

	_, err := database.DB.Collection(database.UserInfos).UpdateOne(
		ctx,
		bson.M{"userId": userID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update profile"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Profile updated successfully"})
}
