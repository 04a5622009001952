package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"jewelry-commerce/middleware"
	"jewelry-commerce/models"
	"jewelry-commerce/store"
	"jewelry-commerce/utils"
)

// CartService is the persistence surface the cart handlers drive.
// *store.CartStore implements it.
type CartService interface {
	GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	AddItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID primitive.ObjectID, productID string, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID primitive.ObjectID, productID string) (*models.Cart, error)
	Clear(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	MergeGuestItems(ctx context.Context, userID primitive.ObjectID, guest []models.CartItem) (*models.Cart, error)
}

// CartController handles the authenticated cart surface. All mutations go
// through the CartService; the guest holder is touched only by the merge
// endpoint, and only after the merge is confirmed persisted.
type CartController struct {
	Carts    CartService
	Guests   *store.GuestCartStore
	Products *mongo.Collection
	Logger   *zap.Logger
}

// NewCartController creates a new CartController. products is the catalog
// collection used to resolve snapshots for adds that carry only a productId.
func NewCartController(carts CartService, guests *store.GuestCartStore, products *mongo.Collection, logger *zap.Logger) *CartController {
	return &CartController{Carts: carts, Guests: guests, Products: products, Logger: logger}
}

func (cc *CartController) userID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetCart retrieves the user's cart, creating an empty one on first use
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.userID(w, r)
	if !ok {
		return
	}
	cart, err := cc.Carts.GetCart(r.Context(), userID)
	if err != nil {
		writeStoreError(w, cc.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddToCart adds a product snapshot to the user's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.userID(w, r)
	if !ok {
		return
	}

	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if item.ProductID == "" {
		writeMessage(w, http.StatusBadRequest, "productId is required")
		return
	}

	// A body without a name carries no snapshot; resolve one from the
	// catalog. Snapshot-carrying bodies are stored as sent, so local-only
	// product IDs keep working.
	if item.Name == "" {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Product does not exist")
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		var product models.Product
		if err := cc.Products.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			writeMessage(w, http.StatusBadRequest, "Product does not exist")
			return
		}
		item = product.Snapshot(item.Quantity)
	}

	cart, err := cc.Carts.AddItem(r.Context(), userID, item)
	if err != nil {
		writeStoreError(w, cc.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type quantityRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantity sets a cart line's quantity; 0 removes the line
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.userID(w, r)
	if !ok {
		return
	}

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.ProductID == "" {
		writeMessage(w, http.StatusBadRequest, "productId is required")
		return
	}

	cart, err := cc.Carts.UpdateQuantity(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		writeStoreError(w, cc.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// RemoveFromCart removes a line from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.userID(w, r)
	if !ok {
		return
	}

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.ProductID == "" {
		writeMessage(w, http.StatusBadRequest, "productId is required")
		return
	}

	cart, err := cc.Carts.RemoveItem(r.Context(), userID, req.ProductID)
	if err != nil {
		writeStoreError(w, cc.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// ClearCart empties the user's cart, keeping the cart record
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.userID(w, r)
	if !ok {
		return
	}
	cart, err := cc.Carts.Clear(r.Context(), userID)
	if err != nil {
		writeStoreError(w, cc.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type mergeRequest struct {
	GuestID string `json:"guest_id"`
}

// MergeCart reconciles a guest cart into the authenticated cart, at login.
// The guest cart is discarded only after the merged cart is persisted; a
// failed merge leaves it untouched so no guest line is lost.
func (cc *CartController) MergeCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.userID(w, r)
	if !ok {
		return
	}

	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.GuestID == "" {
		writeMessage(w, http.StatusBadRequest, "guest_id is required")
		return
	}

	guestItems := cc.Guests.Get(req.GuestID)
	if len(guestItems) == 0 {
		cart, err := cc.Carts.GetCart(r.Context(), userID)
		if err != nil {
			writeStoreError(w, cc.Logger, err)
			return
		}
		cc.Guests.Discard(req.GuestID)
		writeJSON(w, http.StatusOK, cart)
		return
	}

	cart, err := cc.Carts.MergeGuestItems(r.Context(), userID, guestItems)
	if err != nil {
		writeStoreError(w, cc.Logger, err)
		return
	}
	cc.Guests.Discard(req.GuestID)
	writeJSON(w, http.StatusOK, cart)
}
