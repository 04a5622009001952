package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"jewelry-commerce/store"
	"jewelry-commerce/utils"
)

// newOrderController builds an OrderController over a lazily-connected Mongo
// client. Validation failures return before any I/O, so these tests never
// need a running server.
func newOrderController(t *testing.T) *OrderController {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Disconnect(context.Background()) })

	logger := zap.NewNop()
	orders := store.NewOrderStore(client, client.Database("jewelry_test"), 50, logger)
	return NewOrderController(orders, utils.NewEmailService(logger), logger)
}

func TestCreateOrderEmptyItemsRejected(t *testing.T) {
	oc := newOrderController(t)

	body := `{
		"customerName": "Ada Lovelace",
		"customerEmail": "ada@example.com",
		"shippingAddress": "1 Analytical Way",
		"items": []
	}`
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	oc.CreateOrder(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "items")
}

func TestCreateOrderMissingCustomerFields(t *testing.T) {
	oc := newOrderController(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"missing name",
			`{"customerEmail":"ada@example.com","shippingAddress":"1 Way","items":[{"product_id":"p1","quantity":1,"subtotal":10}]}`,
			"customerName",
		},
		{
			"missing email",
			`{"customerName":"Ada","shippingAddress":"1 Way","items":[{"product_id":"p1","quantity":1,"subtotal":10}]}`,
			"customerEmail",
		},
		{
			"missing address",
			`{"customerName":"Ada","customerEmail":"ada@example.com","items":[{"product_id":"p1","quantity":1,"subtotal":10}]}`,
			"shippingAddress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			oc.CreateOrder(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestCreateOrderMalformedBody(t *testing.T) {
	oc := newOrderController(t)

	req := httptest.NewRequest("POST", "/api/orders", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	oc.CreateOrder(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderInvalidID(t *testing.T) {
	oc := newOrderController(t)

	utils.JwtKey = []byte("test-secret")
	req := httptest.NewRequest("GET", "/api/orders/not-an-id", nil)
	req = requestWithClaims(req, &utils.Claims{UserID: "id", Email: "ada@example.com", Role: "user"})
	req = muxSetVars(req, map[string]string{"id": "not-an-id"})

	rec := httptest.NewRecorder()
	oc.GetOrder(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
