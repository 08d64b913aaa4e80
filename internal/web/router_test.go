package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Lamecke/frontend-ecommerce/internal/api"
	"github.com/Lamecke/frontend-ecommerce/internal/domain"
	"github.com/Lamecke/frontend-ecommerce/internal/mirror"
	"github.com/Lamecke/frontend-ecommerce/internal/store"
)

// fakeBackend is a minimal stand-in for the remote commerce API.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		var creds domain.Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid email or password"})
			return
		}
		isAdmin := creds.Email == "admin@example.com"
		json.NewEncoder(w).Encode(domain.User{ID: "u1", Name: "Ana", Email: creds.Email, IsAdmin: isAdmin, Token: "tok-1"})
	})

	mux.HandleFunc("PUT /users/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "not authorized"})
			return
		}
		var update domain.ProfileUpdate
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		json.NewEncoder(w).Encode(domain.User{ID: "u1", Name: update.Name, Email: "ana@example.com"})
	})

	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"products": []map[string]any{{"_id": "p1", "name": "Phone", "price": "50.00", "countInStock": 4}},
			"page":     1,
			"pages":    1,
		})
	})

	mux.HandleFunc("GET /products/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "product not found"})
	})

	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "not authorized"})
			return
		}
		var draft domain.OrderDraft
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		json.NewEncoder(w).Encode(domain.Order{ID: "order-1", OrderItems: draft.OrderItems, TotalPrice: draft.TotalPrice})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T) (http.Handler, *store.Auth) {
	t.Helper()
	logger := zap.NewNop()
	backend := fakeBackend(t)

	var auth *store.Auth
	client := api.NewClient(backend.URL, func() string {
		if auth == nil {
			return ""
		}
		return auth.Token()
	}, logger)
	auth = store.NewAuth(client, logger)

	cart := store.NewCart(mirror.NewMemoryMirror(), client, logger)

	router := NewRouter(Stores{
		Cart:     cart,
		Products: store.NewProducts(client, logger),
		Orders:   store.NewOrders(client, logger),
		Auth:     auth,
	}, logger, 5*time.Second)

	return router, auth
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, handler http.Handler, email string) {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/session", domain.Credentials{Email: email, Password: "secret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func completeAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		Address:    "Rua das Flores 123",
		City:       "Sao Paulo",
		PostalCode: "01000-000",
		Country:    "Brasil",
	}
}

func TestHealth(t *testing.T) {
	handler, _ := newTestApp(t)
	rec := doJSON(t, handler, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalogIsPublic(t *testing.T) {
	handler, _ := newTestApp(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/products?keyword=phone", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.ProductPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Phone", page.Products[0].Name)
}

func TestMissingProductIsNotFound(t *testing.T) {
	handler, _ := newTestApp(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "product not found", resp.Message)
}

func TestCartAddAndRemove(t *testing.T) {
	handler, _ := newTestApp(t)

	add := AddItemRequestDTO{ProductID: "p1", Name: "Phone", Price: money("50.00"), CountInStock: 4, Qty: 2}
	rec := doJSON(t, handler, http.MethodPost, "/api/cart/items", add)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var view store.CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, domain.CheckoutHasItems, view.State)
	assert.True(t, view.Totals.TotalPrice.Equal(money("125.00")))

	rec = doJSON(t, handler, http.MethodDelete, "/api/cart/items/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Empty(t, view.Items)
	assert.Equal(t, domain.CheckoutEmpty, view.State)
}

func TestCartRejectsOverstockQuantity(t *testing.T) {
	handler, _ := newTestApp(t)

	add := AddItemRequestDTO{ProductID: "p1", Name: "Phone", Price: money("50.00"), CountInStock: 4, Qty: 9}
	rec := doJSON(t, handler, http.MethodPost, "/api/cart/items", add)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutRequiresSession(t *testing.T) {
	handler, _ := newTestApp(t)

	rec := doJSON(t, handler, http.MethodPut, "/api/checkout/shipping", completeAddress())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckoutFlowPlacesOrder(t *testing.T) {
	handler, _ := newTestApp(t)
	login(t, handler, "ana@example.com")

	add := AddItemRequestDTO{ProductID: "p1", Name: "Phone", Price: money("50.00"), CountInStock: 4, Qty: 2}
	rec := doJSON(t, handler, http.MethodPost, "/api/cart/items", add)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPut, "/api/checkout/shipping", completeAddress())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, handler, http.MethodPut, "/api/checkout/payment", SetPaymentRequestDTO{PaymentMethod: domain.PaymentPix})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, handler, http.MethodPost, "/api/checkout/", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, "order-1", order.ID)
	assert.True(t, order.TotalPrice.Equal(money("125.00")))

	// cart is empty after placement
	rec = doJSON(t, handler, http.MethodGet, "/api/cart/", nil)
	var view store.CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Empty(t, view.Items)
}

func TestPlaceOrderWithoutPaymentStepConflicts(t *testing.T) {
	handler, _ := newTestApp(t)
	login(t, handler, "ana@example.com")

	add := AddItemRequestDTO{ProductID: "p1", Name: "Phone", Price: money("50.00"), CountInStock: 4, Qty: 1}
	rec := doJSON(t, handler, http.MethodPost, "/api/cart/items", add)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/checkout/", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPaymentStepRequiresAddressFirst(t *testing.T) {
	handler, _ := newTestApp(t)
	login(t, handler, "ana@example.com")

	add := AddItemRequestDTO{ProductID: "p1", Name: "Phone", Price: money("50.00"), CountInStock: 4, Qty: 1}
	rec := doJSON(t, handler, http.MethodPost, "/api/cart/items", add)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPut, "/api/checkout/payment", SetPaymentRequestDTO{PaymentMethod: domain.PaymentPix})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProfileUpdateRoundTrip(t *testing.T) {
	handler, auth := newTestApp(t)
	login(t, handler, "ana@example.com")

	rec := doJSON(t, handler, http.MethodPut, "/api/users/profile", domain.ProfileUpdate{Name: "Ana Maria"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "Ana Maria", user.Name)

	// the session keeps its bearer token across the update
	assert.Equal(t, "tok-1", auth.Token())
}

func TestProfileUpdateRequiresSession(t *testing.T) {
	handler, _ := newTestApp(t)

	rec := doJSON(t, handler, http.MethodPut, "/api/users/profile", domain.ProfileUpdate{Name: "Ana"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesAreGated(t *testing.T) {
	handler, _ := newTestApp(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	login(t, handler, "ana@example.com")
	rec = doJSON(t, handler, http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoginFailureSurfacesServerMessage(t *testing.T) {
	handler, _ := newTestApp(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/session", domain.Credentials{Email: "a@b.c", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid email or password", resp.Message)
}
