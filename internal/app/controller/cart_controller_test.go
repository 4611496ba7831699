package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/marketloop/marketloop-backend/internal/app/repository"
	"github.com/marketloop/marketloop-backend/internal/app/service"
	"github.com/marketloop/marketloop-backend/internal/db"
	"github.com/marketloop/marketloop-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := service.NewCartService(cartRepo, productRepo)

	ctrl := NewCartController(cartService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret", "session_token")

	router := gin.New()
	cart := router.Group("/cart")
	cart.Use(authMiddleware.Authenticate())
	{
		cart.GET("", ctrl.GetCart)
		cart.POST("", ctrl.AddToCart)
		cart.PATCH("/:productId", ctrl.UpdateCartItem)
		cart.DELETE("/:productId", ctrl.RemoveFromCart)
		cart.DELETE("", ctrl.ClearCart)
	}

	return router, testDB
}

func createCartTestProduct(t *testing.T, testDB *gorm.DB, ownerID uint, priceCents int64) *model.Product {
	t.Helper()
	product := &model.Product{
		OwnerID:    ownerID,
		Title:      "Test Listing",
		PriceCents: priceCents,
		Condition:  "good",
		Status:     model.ProductStatusActive,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func TestCartController_GetCart_Empty(t *testing.T) {
	router, testDB := setupCartControllerTest(t)

	_, token := createControllerTestUser(t, testDB, "buyer@example.com", "buyer")

	req := httptest.NewRequest("GET", "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	cart := response["cart"].(map[string]interface{})
	assert.Equal(t, float64(0), cart["total_cents"])
	assert.Len(t, cart["items"], 0)
}

func TestCartController_GetCart_Unauthorized(t *testing.T) {
	router, _ := setupCartControllerTest(t)

	req := httptest.NewRequest("GET", "/cart", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartController_AddToCart_Success(t *testing.T) {
	router, testDB := setupCartControllerTest(t)

	owner, _ := createControllerTestUser(t, testDB, "seller@example.com", "seller")
	_, token := createControllerTestUser(t, testDB, "buyer@example.com", "buyer")
	product := createCartTestProduct(t, testDB, owner.ID, 1500)

	reqBody := AddToCartRequest{ProductID: product.ID, Quantity: 2}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/cart", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	cart := response["cart"].(map[string]interface{})
	assert.Equal(t, float64(3000), cart["total_cents"])
}

func TestCartController_AddToCart_DefaultQuantity(t *testing.T) {
	router, testDB := setupCartControllerTest(t)

	owner, _ := createControllerTestUser(t, testDB, "seller@example.com", "seller")
	_, token := createControllerTestUser(t, testDB, "buyer@example.com", "buyer")
	product := createCartTestProduct(t, testDB, owner.ID, 1000)

	body, _ := json.Marshal(map[string]interface{}{"product_id": product.ID})
	req := httptest.NewRequest("POST", "/cart", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	cart := response["cart"].(map[string]interface{})
	assert.Equal(t, float64(1000), cart["total_cents"])
}

func TestCartController_AddToCart_ProductNotFound(t *testing.T) {
	router, testDB := setupCartControllerTest(t)

	_, token := createControllerTestUser(t, testDB, "buyer@example.com", "buyer")

	reqBody := AddToCartRequest{ProductID: 9999, Quantity: 1}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/cart", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")
}

func TestCartController_AddToCart_SoldProduct(t *testing.T) {
	router, testDB := setupCartControllerTest(t)

	owner, _ := createControllerTestUser(t, testDB, "seller@example.com", "seller")
	_, token := createControllerTestUser(t, testDB, "buyer@example.com", "buyer")
	product := createCartTestProduct(t, testDB, owner.ID, 1000)
	testDB.Model(product).Update("status", model.ProductStatusSold)

	reqBody := AddToCartRequest{ProductID: product.ID, Quantity: 1}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/cart", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_NOT_ACTIVE")
}

func TestCartController_UpdateCartItem_Success(t *testing.T) {
	router, testDB := setupCartControllerTest(t)

	owner, _ := createControllerTestUser(t, testDB, "seller@example.com", "seller")
	_, token := createControllerTestUser(t, testDB, "buyer@example.com", "buyer")
	product := createCartTestProduct(t, testDB, owner.ID, 1000)

	addBody, _ := json.Marshal(AddToCartRequest{ProductID: product.ID, Quantity: 1})
	addReq := httptest.NewRequest("POST", "/cart", bytes.NewBuffer(addBody))
	addReq.Header.Set("Content-Type", "application/json")
	addReq.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(httptest.NewRecorder(), addReq)

	body, _ := json.Marshal(UpdateCartItemRequest{Quantity: 4})
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/cart/%d", product.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	cart := response["cart"].(map[string]interface{})
	assert.Equal(t, float64(4000), cart["total_cents"])
}

func TestCartController_UpdateCartItem_ZeroRemoves(t *testing.T) {
	router, testDB := setupCartControllerTest(t)

	owner, _ := createControllerTestUser(t, testDB, "seller@example.com", "seller")
	_, token := createControllerTestUser(t, testDB, "buyer@example.com", "buyer")
	product := createCartTestProduct(t, testDB, owner.ID, 1000)

	addBody, _ := json.Marshal(AddToCartRequest{ProductID: product.ID, Quantity: 2})
	addReq := httptest.NewRequest("POST", "/cart", bytes.NewBuffer(addBody))
	addReq.Header.Set("Content-Type", "application/json")
	addReq.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(httptest.NewRecorder(), addReq)

	body, _ := json.Marshal(UpdateCartItemRequest{Quantity: 0})
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/cart/%d", product.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	cart := response["cart"].(map[string]interface{})
	assert.Len(t, cart["items"], 0)
}

func TestCartController_UpdateCartItem_NotInCart(t *testing.T) {
	router, testDB := setupCartControllerTest(t)

	owner, _ := createControllerTestUser(t, testDB, "seller@example.com", "seller")
	_, token := createControllerTestUser(t, testDB, "buyer@example.com", "buyer")
	product := createCartTestProduct(t, testDB, owner.ID, 1000)

	// Cart exists but for a different product
	addBody, _ := json.Marshal(AddToCartRequest{ProductID: product.ID, Quantity: 1})
	addReq := httptest.NewRequest("POST", "/cart", bytes.NewBuffer(addBody))
	addReq.Header.Set("Content-Type", "application/json")
	addReq.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(httptest.NewRecorder(), addReq)

	body, _ := json.Marshal(UpdateCartItemRequest{Quantity: 2})
	req := httptest.NewRequest("PATCH", "/cart/9999", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CART_ITEM_NOT_FOUND")
}

func TestCartController_RemoveFromCart_Success(t *testing.T) {
	router, testDB := setupCartControllerTest(t)

	owner, _ := createControllerTestUser(t, testDB, "seller@example.com", "seller")
	_, token := createControllerTestUser(t, testDB, "buyer@example.com", "buyer")
	product := createCartTestProduct(t, testDB, owner.ID, 1000)

	addBody, _ := json.Marshal(AddToCartRequest{ProductID: product.ID, Quantity: 1})
	addReq := httptest.NewRequest("POST", "/cart", bytes.NewBuffer(addBody))
	addReq.Header.Set("Content-Type", "application/json")
	addReq.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(httptest.NewRecorder(), addReq)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/cart/%d", product.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Item removed from cart")
}

func TestCartController_RemoveFromCart_AbsentItemSucceeds(t *testing.T) {
	router, testDB := setupCartControllerTest(t)

	_, token := createControllerTestUser(t, testDB, "buyer@example.com", "buyer")

	// Nothing was ever added; removal is still a 200 no-op
	req := httptest.NewRequest("DELETE", "/cart/9999", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartController_UpdateCartItem_ZeroWithoutCartSucceeds(t *testing.T) {
	router, testDB := setupCartControllerTest(t)

	_, token := createControllerTestUser(t, testDB, "buyer@example.com", "buyer")

	body, _ := json.Marshal(UpdateCartItemRequest{Quantity: 0})
	req := httptest.NewRequest("PATCH", "/cart/1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartController_ClearCart(t *testing.T) {
	router, testDB := setupCartControllerTest(t)

	owner, _ := createControllerTestUser(t, testDB, "seller@example.com", "seller")
	_, token := createControllerTestUser(t, testDB, "buyer@example.com", "buyer")
	product := createCartTestProduct(t, testDB, owner.ID, 1000)

	addBody, _ := json.Marshal(AddToCartRequest{ProductID: product.ID, Quantity: 3})
	addReq := httptest.NewRequest("POST", "/cart", bytes.NewBuffer(addBody))
	addReq.Header.Set("Content-Type", "application/json")
	addReq.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(httptest.NewRecorder(), addReq)

	req := httptest.NewRequest("DELETE", "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	cart := response["cart"].(map[string]interface{})
	assert.Len(t, cart["items"], 0)
	assert.Equal(t, float64(0), cart["total_cents"])
}
