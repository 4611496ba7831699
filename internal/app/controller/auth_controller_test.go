package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marketloop/marketloop-backend/internal/app/repository"
	"github.com/marketloop/marketloop-backend/internal/app/service"
	"github.com/marketloop/marketloop-backend/internal/db"
	"github.com/marketloop/marketloop-backend/internal/middleware"
	"github.com/marketloop/marketloop-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthControllerTest(t *testing.T) (*gin.Engine, service.AuthService) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(userRepo, "test-secret", time.Hour)

	ctrl := NewAuthController(authService, "session_token", false, time.Hour)
	authMiddleware := middleware.NewAuthMiddleware("test-secret", "session_token")

	router := gin.New()
	router.POST("/register", ctrl.Register)
	router.POST("/login", ctrl.Login)
	router.POST("/logout", authMiddleware.OptionalAuthenticate(), ctrl.Logout)
	router.GET("/me", authMiddleware.Authenticate(), ctrl.GetMe)
	router.PATCH("/profile", authMiddleware.Authenticate(), ctrl.UpdateProfile)

	return router, authService
}

func TestAuthController_Register_Success(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	reqBody := RegisterRequest{
		Email:    "test@example.com",
		Username: "tester",
		Password: "password123",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "User registered successfully", response["message"])
	assert.NotNil(t, response["user"])
	assert.NotEmpty(t, response["token"])

	// Session cookie attached
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "session_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// Token valid for this user
	token := response["token"].(string)
	claims, err := util.ValidateSessionToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestAuthController_Register_WithoutUsername(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	body, _ := json.Marshal(map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAuthController_UpdateProfile_ProfileImage(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, token, err := authService.Register("test@example.com", "tester", "password123")
	require.NoError(t, err)

	imageURL := "https://cdn.example.com/avatars/tester.png"
	reqBody := UpdateProfileRequest{ProfileImageURL: &imageURL}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("PATCH", "/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), imageURL)
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("test@example.com", "tester", "password123")
	require.NoError(t, err)

	reqBody := RegisterRequest{
		Email:    "test@example.com",
		Username: "tester2",
		Password: "password456",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_EMAIL_EXISTS")
}

func TestAuthController_Register_DuplicateUsername(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("test@example.com", "tester", "password123")
	require.NoError(t, err)

	reqBody := RegisterRequest{
		Email:    "other@example.com",
		Username: "tester",
		Password: "password456",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_USERNAME_EXISTS")
}

func TestAuthController_Register_MissingFields(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	tests := []struct {
		name    string
		reqBody RegisterRequest
	}{
		{
			name: "Missing email",
			reqBody: RegisterRequest{
				Username: "tester",
				Password: "password123",
			},
		},
		{
			name: "Invalid email",
			reqBody: RegisterRequest{
				Email:    "not-an-email",
				Username: "tester",
				Password: "password123",
			},
		},
		{
			name: "Short password",
			reqBody: RegisterRequest{
				Email:    "test@example.com",
				Username: "tester",
				Password: "123",
			},
		},
		{
			name: "Short username",
			reqBody: RegisterRequest{
				Email:    "test@example.com",
				Username: "ab",
				Password: "password123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthController_Login_Success(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("test@example.com", "tester", "password123")
	require.NoError(t, err)

	reqBody := LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Login successful", response["message"])
	assert.NotNil(t, response["user"])
	assert.NotEmpty(t, response["token"])
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("test@example.com", "tester", "password123")
	require.NoError(t, err)

	reqBody := LoginRequest{
		Email:    "test@example.com",
		Password: "wrongpassword",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_INVALID_CREDENTIALS")
}

func TestAuthController_Logout_ClearsCookie(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, token, err := authService.Register("test@example.com", "tester", "password123")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out successfully")

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "session_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}

func TestAuthController_Logout_WithoutSession(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	// Logout without a token still succeeds
	req := httptest.NewRequest("POST", "/logout", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthController_GetMe_Success(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	user, token, err := authService.Register("test@example.com", "tester", "password123")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	userMap := response["user"].(map[string]interface{})
	assert.Equal(t, user.Email, userMap["email"])
	assert.Equal(t, user.Username, userMap["username"])
}

func TestAuthController_GetMe_Unauthorized(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	req := httptest.NewRequest("GET", "/me", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_UpdateProfile_Success(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, token, err := authService.Register("test@example.com", "tester", "password123")
	require.NoError(t, err)

	newUsername := "tester_v2"
	newBio := "Selling my old gear."
	reqBody := UpdateProfileRequest{
		Username: &newUsername,
		Bio:      &newBio,
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("PATCH", "/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tester_v2")
	assert.Contains(t, w.Body.String(), "Selling my old gear.")
}

func TestAuthController_UpdateProfile_UsernameTaken(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("first@example.com", "first", "password123")
	require.NoError(t, err)
	_, token, err := authService.Register("second@example.com", "second", "password123")
	require.NoError(t, err)

	taken := "first"
	reqBody := UpdateProfileRequest{Username: &taken}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("PATCH", "/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_USERNAME_EXISTS")
}
