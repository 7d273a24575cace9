package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"chaikada_store_front/internal/events"
	"chaikada_store_front/internal/middleware"
	"chaikada_store_front/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string]string{}}
}

func (m *memStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStorage) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStorage) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// guestRouter wires the cart/checkout routes with a fixed guest session.
func guestRouter(d *Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxSessionID, "sess-1")
		c.Set(middleware.CtxIsAuthenticated, false)
		c.Next()
	})
	r.GET("/api/cart", d.GetCart)
	r.POST("/api/cart/add", d.AddToCart)
	r.PATCH("/api/cart/update", d.UpdateCartItem)
	r.DELETE("/api/cart/remove", d.RemoveFromCart)
	r.GET("/api/cart/count", d.CartCount)
	r.POST("/api/checkout/place", d.PlaceOrder)
	r.GET("/api/checkout/draft", d.GetAddressDraft)
	r.PUT("/api/checkout/draft", d.SaveAddressDraft)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

func addPayload(quantity int) map[string]interface{} {
	return map[string]interface{}{
		"product": map[string]interface{}{
			"id":    "P",
			"name":  "Nilgiri Green",
			"image": "/img/nilgiri.jpg",
			"variants": []map[string]interface{}{
				{"size": "100g", "price": 200},
			},
		},
		"variantSize": "100g",
		"quantity":    quantity,
	}
}

func TestGuestCartRoundTrip(t *testing.T) {
	d := &Deps{Storage: newMemStorage(), Bus: events.NewBus()}
	r := guestRouter(d)

	w, body := doJSON(t, r, http.MethodPost, "/api/cart/add", addPayload(2))
	require.Equal(t, http.StatusOK, w.Code)

	cart := body["cart"].(map[string]interface{})
	assert.Equal(t, 400.0, cart["totalPrice"])

	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, 400.0, summary["subtotal"])
	assert.Equal(t, 50.0, summary["shipping"])
	assert.Equal(t, 450.0, summary["total"])

	w, body = doJSON(t, r, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart = body["cart"].(map[string]interface{})
	assert.Len(t, cart["items"], 1)

	w, body = doJSON(t, r, http.MethodGet, "/api/cart/count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.0, body["count"])
}

func TestAddUnknownVariantReturns404(t *testing.T) {
	d := &Deps{Storage: newMemStorage(), Bus: events.NewBus()}
	r := guestRouter(d)

	payload := addPayload(1)
	payload["variantSize"] = "500g"
	w, body := doJSON(t, r, http.MethodPost, "/api/cart/add", payload)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, body["error"], "not available")
}

func TestUpdateMissingItemReturns404(t *testing.T) {
	d := &Deps{Storage: newMemStorage(), Bus: events.NewBus()}
	r := guestRouter(d)

	w, body := doJSON(t, r, http.MethodPatch, "/api/cart/update", map[string]interface{}{
		"productId":   "nope",
		"variantSize": "100g",
		"quantity":    1,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Item not found in cart", body["error"])
}

func TestPlaceWithEmptyCartRedirects(t *testing.T) {
	d := &Deps{Storage: newMemStorage(), Bus: events.NewBus()}
	r := guestRouter(d)

	w, body := doJSON(t, r, http.MethodPost, "/api/checkout/place", map[string]interface{}{
		"shippingAddress": map[string]interface{}{},
		"paymentMethod":   "cod",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "/cart", body["redirect"])
}

func TestPlaceValidationReturnsFieldErrors(t *testing.T) {
	d := &Deps{Storage: newMemStorage(), Bus: events.NewBus()}
	r := guestRouter(d)

	_, _ = doJSON(t, r, http.MethodPost, "/api/cart/add", addPayload(1))

	w, body := doJSON(t, r, http.MethodPost, "/api/checkout/place", map[string]interface{}{
		"shippingAddress": map[string]interface{}{
			"fullName": "Asha Rao",
			"phone":    "12345",
			"street":   "12 MG Road",
			"city":     "Bengaluru",
			"state":    "Karnataka",
			"zipCode":  "560001",
		},
		"paymentMethod": "cod",
		"guestContact":  map[string]interface{}{"mobile": "9876543210"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "phone")
}

func TestAddressDraftRoundTrip(t *testing.T) {
	d := &Deps{Storage: newMemStorage(), Bus: events.NewBus()}
	r := guestRouter(d)

	w, body := doJSON(t, r, http.MethodGet, "/api/checkout/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, body["draft"])

	w, body = doJSON(t, r, http.MethodPut, "/api/checkout/draft", map[string]interface{}{
		"fullName": "Asha Rao",
		"city":     "Bengaluru",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["saved"])

	w, body = doJSON(t, r, http.MethodGet, "/api/checkout/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)
	draft := body["draft"].(map[string]interface{})
	assert.Equal(t, "Asha Rao", draft["fullName"])
}

func TestCorruptAddressDraftRendersAsNull(t *testing.T) {
	storage := newMemStorage()
	storage.data["draft:sess:sess-1"] = `{"fullName":`
	d := &Deps{Storage: storage, Bus: events.NewBus()}
	r := guestRouter(d)

	w, body := doJSON(t, r, http.MethodGet, "/api/checkout/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), "response must stay valid JSON")
	assert.Nil(t, body["draft"])
}

func TestGuestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	var gotOrderBody map[string]interface{}
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/guest", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotOrderBody)
		w.Write([]byte(`{"data":{"orderId":"o1","orderNumber":"CK-1001","paymentMethod":"cod","orderStatus":"placed"}}`))
	}))
	defer api.Close()

	storage := newMemStorage()
	d := &Deps{API: upstream.NewClient(api.URL), Storage: storage, Bus: events.NewBus()}
	r := guestRouter(d)

	_, _ = doJSON(t, r, http.MethodPost, "/api/cart/add", addPayload(2))

	w, body := doJSON(t, r, http.MethodPost, "/api/checkout/place", map[string]interface{}{
		"shippingAddress": map[string]interface{}{
			"fullName": "Asha Rao",
			"phone":    "9876543210",
			"street":   "12 MG Road",
			"city":     "Bengaluru",
			"state":    "Karnataka",
			"zipCode":  "560001",
			"country":  "India",
		},
		"paymentMethod": "cod",
		"guestContact":  map[string]interface{}{"mobile": "9876543210"},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "confirmed", body["status"])
	assert.Equal(t, "/track?mobile=9876543210", body["trackingUrl"])

	items := gotOrderBody["items"].([]interface{})
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, "P", line["productId"])
	assert.Equal(t, "100g", line["variantSize"])
	assert.Equal(t, 2.0, line["quantity"])

	assert.Empty(t, storage.data, "guest cart must be cleared after placement")
}
