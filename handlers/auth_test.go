package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func postJSON(t *testing.T, handler echo.HandlerFunc, body string, setup func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	require.NoError(t, handler(c))
	return rec
}

func TestSignUpRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing password", `{"email":"a@b.com","confirmPassword":"x","birthdate":"2000-01-01"}`},
		{"missing confirm", `{"email":"a@b.com","password":"x","birthdate":"2000-01-01"}`},
		{"missing birthdate", `{"email":"a@b.com","password":"x","confirmPassword":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, SignUp, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "required")
		})
	}
}

func TestSignUpRejectsPasswordMismatch(t *testing.T) {
	body := `{"email":"a@b.com","password":"one","confirmPassword":"two","birthdate":"2000-01-01"}`
	rec := postJSON(t, SignUp, body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Passwords do not match")
}

func TestSignUpStoresHashedPasswordAndProfile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	store := newMemUserStore()
	useUserStore(t, store)

	body := `{"email":"jane@example.com","password":"hunter2","confirmPassword":"hunter2","birthdate":"2000-01-01"}`
	rec := postJSON(t, SignUp, body, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"jane"`)

	user, ok := store.users["jane@example.com"]
	require.True(t, ok)
	assert.NotEqual(t, "hunter2", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter2")))

	require.Len(t, store.infos, 1)
	assert.Equal(t, "jane", store.infos[0].Username)
	assert.Equal(t, user.ID, store.infos[0].UserID)
}

func TestSignUpDuplicateEmailConflicts(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	store := newMemUserStore()
	useUserStore(t, store)

	body := `{"email":"jane@example.com","password":"hunter2","confirmPassword":"hunter2","birthdate":"2000-01-01"}`
	require.Equal(t, http.StatusCreated, postJSON(t, SignUp, body, nil).Code)

	rec := postJSON(t, SignUp, body, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already registered")
	assert.Len(t, store.users, 1)
	assert.Len(t, store.infos, 1)
}

func TestSignUpDoesNotInsertWhenLookupFails(t *testing.T) {
	store := newMemUserStore()
	store.findErr = errors.New("connection reset")
	useUserStore(t, store)

	body := `{"email":"jane@example.com","password":"hunter2","confirmPassword":"hunter2","birthdate":"2000-01-01"}`
	rec := postJSON(t, SignUp, body, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, store.users)
	assert.Empty(t, store.infos)
}

func TestLoginDoesNotRevealWhichAccountsExist(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	store := newMemUserStore()
	useUserStore(t, store)

	signup := `{"email":"jane@example.com","password":"hunter2","confirmPassword":"hunter2","birthdate":"2000-01-01"}`
	require.Equal(t, http.StatusCreated, postJSON(t, SignUp, signup, nil).Code)

	wrongPassword := postJSON(t, Login, `{"email":"jane@example.com","password":"nope"}`, nil)
	unknownEmail := postJSON(t, Login, `{"email":"ghost@example.com","password":"nope"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	store := newMemUserStore()
	useUserStore(t, store)

	signup := `{"email":"jane@example.com","password":"hunter2","confirmPassword":"hunter2","birthdate":"2000-01-01"}`
	require.Equal(t, http.StatusCreated, postJSON(t, SignUp, signup, nil).Code)

	rec := postJSON(t, Login, `{"email":"jane@example.com","password":"hunter2"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
	assert.Contains(t, rec.Body.String(), `"email":"jane@example.com"`)
}
