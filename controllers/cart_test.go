package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"jewelry-commerce/models"
	"jewelry-commerce/store"
	"jewelry-commerce/utils"
)

// fakeCartService keeps a single in-memory cart and can be told to fail,
// standing in for the Mongo-backed store.
type fakeCartService struct {
	cart     models.Cart
	getErr   error
	mergeErr error
}

func (f *fakeCartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cart := f.cart
	return &cart, nil
}

func (f *fakeCartService) AddItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem) (*models.Cart, error) {
	f.cart.Items = models.UpsertItem(f.cart.Items, item)
	cart := f.cart
	return &cart, nil
}

func (f *fakeCartService) UpdateQuantity(ctx context.Context, userID primitive.ObjectID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, store.ErrInvalidQuantity
	}
	items, found := models.SetItemQuantity(f.cart.Items, productID, quantity)
	if !found && quantity != 0 {
		return nil, store.ErrNotFound
	}
	f.cart.Items = items
	cart := f.cart
	return &cart, nil
}

func (f *fakeCartService) RemoveItem(ctx context.Context, userID primitive.ObjectID, productID string) (*models.Cart, error) {
	f.cart.Items = models.RemoveItem(f.cart.Items, productID)
	cart := f.cart
	return &cart, nil
}

func (f *fakeCartService) Clear(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	f.cart.Items = nil
	cart := f.cart
	return &cart, nil
}

func (f *fakeCartService) MergeGuestItems(ctx context.Context, userID primitive.ObjectID, guest []models.CartItem) (*models.Cart, error) {
	if f.mergeErr != nil {
		return nil, f.mergeErr
	}
	f.cart.Items = models.MergeItems(f.cart.Items, guest)
	cart := f.cart
	return &cart, nil
}

func newCartController(carts CartService) (*CartController, *store.GuestCartStore) {
	guests := store.NewGuestCartStore()
	return NewCartController(carts, guests, nil, zap.NewNop()), guests
}

func cartRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	return requestWithClaims(req, &utils.Claims{
		UserID: primitive.NewObjectID().Hex(),
		Email:  "ada@example.com",
		Role:   "user",
	})
}

func TestMergeCartFoldsGuestIntoServerCart(t *testing.T) {
	carts := &fakeCartService{cart: models.Cart{Items: []models.CartItem{
		{ProductID: "p1", Name: "Gold Ring", Price: 120, Quantity: 2},
	}}}
	cc, guests := newCartController(carts)

	guestID := guests.NewGuestID()
	guests.AddItem(guestID, models.CartItem{ProductID: "p1", Name: "Gold Ring", Price: 120, Quantity: 1})

	rec := httptest.NewRecorder()
	cc.MergeCart(rec, cartRequest(t, "POST", "/api/cart/merge", map[string]string{"guest_id": guestID}))
	require.Equal(t, http.StatusOK, rec.Code)

	var cart models.Cart
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// The guest cart is gone only because the merge was confirmed persisted.
	assert.Empty(t, guests.Get(guestID))
}

func TestMergeCartFailureRetainsGuestCart(t *testing.T) {
	carts := &fakeCartService{mergeErr: errors.New("write concern timeout")}
	cc, guests := newCartController(carts)

	guestID := guests.NewGuestID()
	guests.AddItem(guestID, models.CartItem{ProductID: "p1", Name: "Gold Ring", Price: 120, Quantity: 1})

	rec := httptest.NewRecorder()
	cc.MergeCart(rec, cartRequest(t, "POST", "/api/cart/merge", map[string]string{"guest_id": guestID}))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// A failed merge must leave the guest cart untouched so nothing is lost.
	retained := guests.Get(guestID)
	require.Len(t, retained, 1)
	assert.Equal(t, "p1", retained[0].ProductID)
	assert.Equal(t, 1, retained[0].Quantity)
}

func TestMergeCartEmptyGuestFetchFailure(t *testing.T) {
	carts := &fakeCartService{getErr: errors.New("server selection timeout")}
	cc, guests := newCartController(carts)
	guestID := guests.NewGuestID()

	rec := httptest.NewRecorder()
	cc.MergeCart(rec, cartRequest(t, "POST", "/api/cart/merge", map[string]string{"guest_id": guestID}))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMergeCartRequiresGuestID(t *testing.T) {
	cc, _ := newCartController(&fakeCartService{})

	rec := httptest.NewRecorder()
	cc.MergeCart(rec, cartRequest(t, "POST", "/api/cart/merge", map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateQuantityAbsentLineNotFound(t *testing.T) {
	cc, _ := newCartController(&fakeCartService{})

	rec := httptest.NewRecorder()
	cc.UpdateQuantity(rec, cartRequest(t, "POST", "/api/cart/update",
		map[string]interface{}{"productId": "missing", "quantity": 2}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	carts := &fakeCartService{cart: models.Cart{Items: []models.CartItem{
		{ProductID: "p1", Name: "Gold Ring", Price: 120, Quantity: 2},
	}}}
	cc, _ := newCartController(carts)

	rec := httptest.NewRecorder()
	cc.UpdateQuantity(rec, cartRequest(t, "POST", "/api/cart/update",
		map[string]interface{}{"productId": "p1", "quantity": 0}))
	require.Equal(t, http.StatusOK, rec.Code)

	var cart models.Cart
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cart))
	assert.Empty(t, cart.Items)
}

func TestAddToCartRequiresProductID(t *testing.T) {
	cc, _ := newCartController(&fakeCartService{})

	rec := httptest.NewRecorder()
	cc.AddToCart(rec, cartRequest(t, "POST", "/api/cart/add",
		map[string]interface{}{"name": "Gold Ring", "quantity": 1}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartEndpointsRejectMissingClaims(t *testing.T) {
	cc, _ := newCartController(&fakeCartService{})

	rec := httptest.NewRecorder()
	cc.GetCart(rec, httptest.NewRequest("GET", "/api/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
