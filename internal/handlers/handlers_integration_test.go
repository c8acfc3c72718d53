package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"marketplace/internal/database/dbtest"
	"marketplace/internal/handlers"
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test_jwt_secret"

type testApp struct {
	t    *testing.T
	app  *fiber.App
	auth *services.AuthService
}

// setupApp builds a Fiber app on a private in-memory SQLite database with
// every handler registered under /api.
func setupApp(t *testing.T) *testApp {
	db := dbtest.New(t)

	// Initialize Repositories
	repos := repositories.NewGORMRepositories(db)
	tx := repositories.NewGORMTransactor(db)

	// Initialize Services
	authService := services.NewAuthService(repos.Users, services.NewTokenService(testJWTSecret))
	storeService := services.NewStoreService(repos.Stores, repos.Products, repos.Reviews)
	productService := services.NewProductService(repos.Stores, repos.Products)
	orderService := services.NewOrderService(tx, repos.Orders, repos.Stores, nil, nil)
	reviewService := services.NewReviewService(tx, repos.Reviews, repos.Stores)

	app := fiber.New()
	api := app.Group("/api")
	guard := middleware.NewGuard(authService)
	handlers.NewAuthHandler(authService).RegisterRoutes(api, guard)
	handlers.NewStoreHandler(storeService, productService).RegisterRoutes(api, guard)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(api, guard)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, guard)

	return &testApp{t: t, app: app, auth: authService}
}

// do sends a JSON request and decodes the JSON response into out when out
// is not nil.
func (a *testApp) do(method, path, token string, body interface{}, out interface{}) int {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1) // -1 for no timeout
	require.NoError(a.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// account creates a user with role and returns a token for it.
func (a *testApp) account(username string, role models.Role) string {
	a.t.Helper()
	_, err := a.auth.CreateUser(context.Background(), services.NewUser{
		Username: username,
		FullName: username + " full",
		Email:    username + "@example.com",
		Password: "password123",
	}, role)
	require.NoError(a.t, err)

	var loginResp map[string]interface{}
	status := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username_or_email": username,
		"password":          "password123",
	}, &loginResp)
	require.Equal(a.t, http.StatusOK, status)
	return loginResp["access_token"].(string)
}

type message struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestAuthRegisterLoginAndMe(t *testing.T) {
	a := setupApp(t)

	userToRegister := map[string]string{
		"username":  "testuser",
		"full_name": "Test User",
		"email":     "Test@Example.com",
		"password":  "password123",
		"role":      "ADMIN",
	}
	var registerResp map[string]interface{}
	status := a.do(http.MethodPost, "/api/auth/register", "", userToRegister, &registerResp)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User registered successfully", registerResp["message"])
	assert.NotEmpty(t, registerResp["access_token"])
	user := registerResp["user"].(map[string]interface{})
	assert.Equal(t, "CUSTOMER", user["role"])
	assert.Equal(t, "test@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")

	// Test Duplicate Registration (username)
	status = a.do(http.MethodPost, "/api/auth/register", "", userToRegister, nil)
	assert.Equal(t, http.StatusConflict, status)

	// Test validation
	var validation message
	status = a.do(http.MethodPost, "/api/auth/register", "", map[string]string{"username": "x"}, &validation)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", validation.Message)
	assert.Contains(t, validation.Errors, "Email")

	// Test Login by email
	var loginResp map[string]interface{}
	status = a.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username_or_email": "test@example.com",
		"password":          "password123",
	}, &loginResp)
	require.Equal(t, http.StatusOK, status)
	token := loginResp["access_token"].(string)

	status = a.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username_or_email": "testuser",
		"password":          "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	var meResp map[string]map[string]interface{}
	status = a.do(http.MethodGet, "/api/auth/me", token, nil, &meResp)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "testuser", meResp["user"]["username"])
	assert.Equal(t, "Test User", meResp["user"]["full_name"])
}

func TestAuthorizationGate(t *testing.T) {
	a := setupApp(t)
	customerToken := a.account("alice", models.RoleCustomer)

	var msg message
	status := a.do(http.MethodGet, "/api/auth/me", "", nil, &msg)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, services.ErrMissingCredential.Error(), msg.Message)

	status = a.do(http.MethodGet, "/api/auth/me", "not-a-token", nil, &msg)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, services.ErrMalformedCredential.Error(), msg.Message)

	status = a.do(http.MethodGet, "/api/orders/seller", customerToken, nil, &msg)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, services.ErrForbidden.Error(), msg.Message)

	status = a.do(http.MethodPost, "/api/admin/users", customerToken, map[string]string{}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		Role: models.RoleCustomer,
		StandardClaims: jwt.StandardClaims{
			Subject:   "whoever",
			IssuedAt:  time.Now().Add(-48 * time.Hour).Unix(),
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	status = a.do(http.MethodGet, "/api/auth/me", expired, nil, &msg)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, services.ErrExpiredCredential.Error(), msg.Message)

	ghost, err := services.NewTokenService(testJWTSecret).Issue(&models.User{ID: "deleted-user", Role: models.RoleCustomer})
	require.NoError(t, err)
	status = a.do(http.MethodGet, "/api/auth/me", ghost, nil, &msg)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, services.ErrUnknownUser.Error(), msg.Message)
}

func TestAdminCreatesSeller(t *testing.T) {
	a := setupApp(t)
	adminToken := a.account("root", models.RoleAdmin)

	var created struct {
		Message string `json:"message"`
		User    struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	status := a.do(http.MethodPost, "/api/admin/users", adminToken, map[string]string{
		"username":  "bakery",
		"full_name": "Bakery",
		"email":     "bakery@example.com",
		"password":  "password123",
		"role":      "SELLER",
	}, &created)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User created successfully", created.Message)
	assert.Equal(t, "bakery", created.User.Username)
	assert.Equal(t, "SELLER", created.User.Role)

	// Roles are matched case-insensitively
	status = a.do(http.MethodPost, "/api/admin/users", adminToken, map[string]string{
		"username":  "pantry",
		"full_name": "Pantry",
		"email":     "pantry@example.com",
		"password":  "password123",
		"role":      "seller",
	}, &created)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "SELLER", created.User.Role)

	var msg message
	status = a.do(http.MethodPost, "/api/admin/users", adminToken, map[string]string{
		"username":  "other",
		"full_name": "Other",
		"email":     "other@example.com",
		"password":  "password123",
		"role":      "OWNER",
	}, &msg)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, services.ErrInvalidInput.Error(), msg.Message)
}

type orderResp struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	StoreName   string  `json:"store_name"`
	TotalAmount float64 `json:"total_amount"`
	Items       []struct {
		ProductName string  `json:"product_name"`
		UnitPrice   float64 `json:"unit_price"`
		Quantity    int     `json:"quantity"`
		Subtotal    float64 `json:"subtotal"`
	} `json:"items"`
}

func TestStoreOrderAndReviewFlow(t *testing.T) {
	a := setupApp(t)
	sellerToken := a.account("bob", models.RoleSeller)
	customerToken := a.account("alice", models.RoleCustomer)

	// --- Seller sets up the store ---
	status := a.do(http.MethodGet, "/api/stores/my", sellerToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	var storeResp struct {
		Store struct {
			ID       string `json:"id"`
			Category string `json:"category"`
			IsActive bool   `json:"is_active"`
		} `json:"store"`
	}
	status = a.do(http.MethodPost, "/api/stores/my", sellerToken, map[string]interface{}{
		"name":         "Bob's Kitchen",
		"delivery_fee": 5,
	}, &storeResp)
	require.Equal(t, http.StatusCreated, status)
	storeID := storeResp.Store.ID
	assert.Equal(t, "FOOD", storeResp.Store.Category)
	assert.True(t, storeResp.Store.IsActive)

	status = a.do(http.MethodPost, "/api/stores/my", customerToken, map[string]interface{}{"name": "Nope"}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var product struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
		Stock int     `json:"stock"`
	}
	status = a.do(http.MethodPost, "/api/stores/my/products", sellerToken, map[string]interface{}{
		"name":  "Soup",
		"price": "15.00",
		"stock": "lots",
	}, &product)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 15.0, product.Price)
	assert.Equal(t, 0, product.Stock)

	status = a.do(http.MethodPost, "/api/stores/my/products", sellerToken, map[string]interface{}{
		"name":  "Free lunch",
		"price": -1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// --- Public browsing ---
	var detail struct {
		Store    map[string]interface{}   `json:"store"`
		Products []map[string]interface{} `json:"products"`
	}
	status = a.do(http.MethodGet, "/api/stores/"+storeID, "", nil, &detail)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, detail.Products, 1)
	assert.Equal(t, 0.0, detail.Store["avg_rating"])

	// --- Customer orders ---
	var order orderResp
	status = a.do(http.MethodPost, "/api/orders", customerToken, map[string]interface{}{
		"store_id": storeID,
		"items":    []map[string]interface{}{{"product_id": product.ID, "quantity": 2}},
		"notes":    "extra bread",
	}, &order)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "PENDING", order.Status)
	assert.Equal(t, "Bob's Kitchen", order.StoreName)
	assert.Equal(t, 30.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 15.0, order.Items[0].UnitPrice)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 30.0, order.Items[0].Subtotal)

	var msg message
	status = a.do(http.MethodPost, "/api/orders", customerToken, map[string]interface{}{
		"store_id": storeID,
		"items":    []map[string]interface{}{{"product_id": product.ID, "quantity": 1}, {"product_id": "nope"}},
	}, &msg)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, msg.Message, "nope")

	status = a.do(http.MethodPost, "/api/orders", customerToken, map[string]interface{}{
		"store_id": storeID,
		"items":    []interface{}{},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = a.do(http.MethodPost, "/api/orders", sellerToken, map[string]interface{}{"store_id": storeID}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var mine []orderResp
	status = a.do(http.MethodGet, "/api/orders/my", customerToken, nil, &mine)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, mine, 1)

	// --- Seller fulfils ---
	var sellerOrders []orderResp
	status = a.do(http.MethodGet, "/api/orders/seller", sellerToken, nil, &sellerOrders)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, sellerOrders, 1)

	var accepted orderResp
	status = a.do(http.MethodPost, "/api/orders/"+order.ID+"/status", sellerToken, map[string]string{"status": "ACCEPTED"}, &accepted)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ACCEPTED", accepted.Status)
	assert.Equal(t, 30.0, accepted.TotalAmount)

	status = a.do(http.MethodPost, "/api/orders/"+order.ID+"/status", sellerToken, map[string]string{"status": "LOST"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	otherSeller := a.account("mallory", models.RoleSeller)
	status = a.do(http.MethodPost, "/api/orders/"+order.ID+"/status", otherSeller, map[string]string{"status": "CANCELLED"}, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// --- Reviews ---
	var review map[string]interface{}
	status = a.do(http.MethodPost, "/api/stores/"+storeID+"/reviews", customerToken, map[string]interface{}{"rating": 4, "comment": "Good"}, &review)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 4.0, review["avg_rating"])

	status = a.do(http.MethodPost, "/api/stores/"+storeID+"/reviews", customerToken, map[string]interface{}{"rating": 5}, &review)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 5.0, review["avg_rating"])
	assert.Equal(t, 1.0, review["reviews_count"])
	assert.Equal(t, "Good", review["review"].(map[string]interface{})["comment"])

	status = a.do(http.MethodPost, "/api/stores/"+storeID+"/reviews", customerToken, map[string]interface{}{"rating": 9}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var storeReviews []map[string]interface{}
	status = a.do(http.MethodGet, "/api/stores/"+storeID+"/reviews", "", nil, &storeReviews)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, storeReviews, 1)
	assert.Equal(t, "alice full", storeReviews[0]["customer_name"])

	var myReviews []map[string]interface{}
	status = a.do(http.MethodGet, "/api/profile/my-reviews", customerToken, nil, &myReviews)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, myReviews, 1)
	assert.Equal(t, "Bob's Kitchen", myReviews[0]["store_name"])

	var stores []map[string]interface{}
	status = a.do(http.MethodGet, "/api/stores?search=kitchen", "", nil, &stores)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, stores, 1)
	assert.Equal(t, 5.0, stores[0]["avg_rating"])

	// --- Catalog edits leave the order untouched ---
	status = a.do(http.MethodPut, "/api/stores/my/products/"+product.ID, sellerToken, map[string]interface{}{"price": 99}, nil)
	assert.Equal(t, http.StatusOK, status)
	status = a.do(http.MethodDelete, "/api/stores/my/products/"+product.ID, sellerToken, nil, nil)
	assert.Equal(t, http.StatusOK, status)

	status = a.do(http.MethodGet, "/api/orders/my", customerToken, nil, &mine)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, mine, 1)
	assert.Equal(t, 15.0, mine[0].Items[0].UnitPrice)
	assert.Equal(t, 30.0, mine[0].TotalAmount)

	// --- Store edits keep the category when none is sent ---
	var updated map[string]interface{}
	status = a.do(http.MethodPut, "/api/stores/my", sellerToken, map[string]interface{}{"name": "Bob's Diner"}, &updated)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Bob's Diner", updated["name"])
	assert.Equal(t, "FOOD", updated["category"])
}

func TestLenientQuantityAndRating(t *testing.T) {
	a := setupApp(t)
	sellerToken := a.account("bob", models.RoleSeller)
	customerToken := a.account("alice", models.RoleCustomer)

	var storeResp struct {
		Store struct {
			ID string `json:"id"`
		} `json:"store"`
	}
	status := a.do(http.MethodPost, "/api/stores/my", sellerToken, map[string]interface{}{"name": "Bob's Kitchen"}, &storeResp)
	require.Equal(t, http.StatusCreated, status)
	storeID := storeResp.Store.ID

	var product struct {
		ID string `json:"id"`
	}
	status = a.do(http.MethodPost, "/api/stores/my/products", sellerToken, map[string]interface{}{"name": "Soup", "price": 15}, &product)
	require.Equal(t, http.StatusCreated, status)

	// Non-numeric and missing quantities count as one, numeric strings are parsed
	var order orderResp
	status = a.do(http.MethodPost, "/api/orders", customerToken, map[string]interface{}{
		"store_id": storeID,
		"items": []map[string]interface{}{
			{"product_id": product.ID, "quantity": "abc"},
			{"product_id": product.ID, "quantity": nil},
			{"product_id": product.ID, "quantity": "3"},
		},
	}, &order)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, order.Items, 3)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, 15.0, order.Items[0].Subtotal)
	assert.Equal(t, 1, order.Items[1].Quantity)
	assert.Equal(t, 3, order.Items[2].Quantity)
	assert.Equal(t, 75.0, order.TotalAmount)

	var review struct {
		Review struct {
			Rating int `json:"rating"`
		} `json:"review"`
	}
	status = a.do(http.MethodPost, "/api/stores/"+storeID+"/reviews", customerToken, map[string]interface{}{"rating": "5"}, &review)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 5, review.Review.Rating)

	var msg message
	status = a.do(http.MethodPost, "/api/stores/"+storeID+"/reviews", customerToken, map[string]interface{}{"rating": "great"}, &msg)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, services.ErrInvalidRating.Error(), msg.Message)

	status = a.do(http.MethodPost, "/api/stores/"+storeID+"/reviews", customerToken, map[string]interface{}{"rating": 6}, &msg)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, services.ErrInvalidRating.Error(), msg.Message)
}
