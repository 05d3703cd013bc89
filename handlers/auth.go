package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/voguemanic/voguemanic-backend/models"
	"github.com/voguemanic/voguemanic-backend/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// SignUpRequest represents the expected request body for signup
type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Birthdate       string `json:"birthdate"`
}

// SignUp handles user registration
func SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	// Validate input
	if req.Email == "" || req.Password == "" || req.ConfirmPassword == "" || req.Birthdate == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "All fields are required"})
	}

	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Passwords do not match"})
	}

	// Check if user already exists. A failed lookup is not "no duplicate":
	// the insert must not proceed on a flaky connection.
	_, err := Users.FindUserByEmail(c.Request().Context(), req.Email)
	if err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Email already registered"})
	}
	if err != mongo.ErrNoDocuments {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check account"})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process password"})
	}

	newUser := models.User{
		ID:        primitive.NewObjectID(),
		Email:     req.Email,
		Password:  string(hashedPassword),
		Birthdate: req.Birthdate,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := Users.InsertUser(c.Request().Context(), newUser); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create user"})
	}

	// Companion profile document
	username := models.UsernameFromEmail(req.Email)
	info := models.UserInfo{
		UserID:         newUser.ID,
		Username:       username,
		Email:          req.Email,
		OtherAddresses: []string{},
	}
	if err := Users.InsertUserInfo(c.Request().Context(), info); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create user profile"})
	}

	token, err := utils.GenerateJWT(newUser.ID.Hex())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"token":    token,
		"email":    newUser.Email,
		"username": username,
	})
}

func Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	user, err := Users.FindUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		// Same message whether the email is unknown or the password is
		// wrong, so the response never reveals that an account exists.
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch account"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	token, err := utils.GenerateJWT(user.ID.Hex())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token": token,
		"email": user.Email,
	})
}
