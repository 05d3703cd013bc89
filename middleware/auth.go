package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/voguemanic/voguemanic-backend/database"
	"github.com/voguemanic/voguemanic-backend/models"
	"github.com/voguemanic/voguemanic-backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthMiddleware verifies the Bearer token and injects the authenticated
// user's id and email into the request context. It fails closed on a
// missing, malformed or expired token, and with 404 if the token refers to
// a user that no longer exists.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing authorization header"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid authorization header format"})
			}

			claims, err := utils.ValidateJWT(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token subject"})
			}

			var user models.User
			err = database.DB.Collection(database.Users).FindOne(
				c.Request().Context(),
				bson.M{"_id": userID},
			).Decode(&user)
			if err != nil {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
			}

			c.Set("userID", userID)
			c.Set("userEmail", user.Email)
			c.Set("isAdmin", user.IsAdmin)
			return next(c)
		}
	}
}

// AdminMiddleware gates the back-office routes. It must run after
// AuthMiddleware.
func AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, ok := c.Get("isAdmin").(bool)
			if !ok || !isAdmin {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Admin access required"})
			}
			return next(c)
		}
	}
}
