package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/app/routes"
	"github.com/velora-shop/velora/app/services"
	"github.com/velora-shop/velora/pkg/auth"
	"github.com/velora-shop/velora/pkg/router"
)

// newTestAPI spins up the full route table over an in-memory database.
func newTestAPI(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.Image{},
	))

	r := router.New()
	routes.Register(r, db)
	return r.Handler(), db
}

func signup(t *testing.T, db *gorm.DB, email string, admin bool) (models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	user := models.User{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     email,
		Password:  hash,
		IsAdmin:   admin,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := auth.GenerateToken(user.ID, user.Email, user.FullName(), user.IsAdmin)
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seedCatalog(t *testing.T, db *gorm.DB, qty int) models.Product {
	t.Helper()

	catalog := services.NewCatalogService(db)
	category, err := catalog.CreateCategory(services.CategoryInput{Name: "Lab Coats"})
	require.NoError(t, err)
	product, err := catalog.CreateProduct(services.ProductInput{
		Name:       "Classic Lab Coat",
		Price:      40,
		Quantity:   qty,
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	return product
}

func TestRegisterEndpoint(t *testing.T) {
	h, _ := newTestAPI(t)

	payload := map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"password":  "analytical-engine",
	}
	rec := doJSON(t, h, http.MethodPost, "/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data struct {
			Token string `json:"token"`
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.Token)
	assert.Equal(t, "ada@example.com", body.Data.Email)

	// Same email again conflicts.
	rec = doJSON(t, h, http.MethodPost, "/auth/register", "", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/auth/register", "", map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "not-an-email",
		"password":  "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	h, db := newTestAPI(t)
	signup(t, db, "grace@example.com", false)

	rec := doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "grace@example.com",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "grace@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlaceOrderEndpoint(t *testing.T) {
	h, db := newTestAPI(t)
	_, token := signup(t, db, "buyer@example.com", false)
	product := seedCatalog(t, db, 5)

	order := func(qty int) map[string]interface{} {
		return map[string]interface{}{
			"items":     []map[string]interface{}{{"productId": product.ID, "quantity": qty}},
			"numberOne": "0123456789",
			"address":   "12 Harbor Lane",
			"city":      "Chattogram",
			"state":     "Chattogram",
			"country":   "Bangladesh",
			"postCode":  "4000",
		}
	}

	// Unauthenticated checkout is rejected.
	rec := doJSON(t, h, http.MethodPost, "/orders", "", order(1))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/orders", token, order(5))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Stock is gone now.
	rec = doJSON(t, h, http.MethodPost, "/orders", token, order(1))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Order history for the buyer.
	rec = doJSON(t, h, http.MethodGet, "/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var history struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history.Data, 1)
	assert.InDelta(t, 200, history.Data[0].Total, 0.001)
}

func TestPlaceOrderUnknownProductEndpoint(t *testing.T) {
	h, db := newTestAPI(t)
	_, token := signup(t, db, "buyer@example.com", false)

	rec := doJSON(t, h, http.MethodPost, "/orders", token, map[string]interface{}{
		"items":     []map[string]interface{}{{"productId": 999, "quantity": 1}},
		"numberOne": "0123456789",
		"address":   "12 Harbor Lane",
		"city":      "Chattogram",
		"state":     "Chattogram",
		"country":   "Bangladesh",
		"postCode":  "4000",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	h, db := newTestAPI(t)
	_, userToken := signup(t, db, "user@example.com", false)
	_, adminToken := signup(t, db, "admin@example.com", true)

	payload := map[string]string{"name": "Scrubs"}

	rec := doJSON(t, h, http.MethodPost, "/categories", "", payload)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/categories", userToken, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/categories", adminToken, payload)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUpdateProductValidatesPayload(t *testing.T) {
	h, db := newTestAPI(t)
	_, adminToken := signup(t, db, "admin@example.com", true)
	product := seedCatalog(t, db, 40)
	path := fmt.Sprintf("/products/%d", product.ID)

	rec := doJSON(t, h, http.MethodPut, path, adminToken, map[string]interface{}{
		"quantity": -5,
		"price":    -12,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, h, http.MethodPut, path, adminToken, map[string]interface{}{
		"gender": "robot",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// The product is untouched and a well-formed update still lands.
	rec = doJSON(t, h, http.MethodPut, path, adminToken, map[string]interface{}{
		"quantity": 35,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated struct {
		Data models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 35, updated.Data.Quantity)
	assert.InDelta(t, 40, updated.Data.Price, 0.001)
}

func TestPublicCatalogEndpoints(t *testing.T) {
	h, db := newTestAPI(t)
	product := seedCatalog(t, db, 10)

	rec := doJSON(t, h, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/products/%d", product.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/categories", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGraphQLCatalogQuery(t *testing.T) {
	h, db := newTestAPI(t)
	seedCatalog(t, db, 10)

	rec := doJSON(t, h, http.MethodPost, "/graphql", "", map[string]string{
		"query": `{ products { name price quantity } }`,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Classic Lab Coat")
}
