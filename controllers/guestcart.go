package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"jewelry-commerce/models"
	"jewelry-commerce/store"
)

// GuestCartController handles carts for unauthenticated visitors. The guest
// ID issued on first add is the client's key across page loads; the item
// payload carries the full catalog snapshot, so arbitrary string product IDs
// work without a catalog round-trip.
type GuestCartController struct {
	Guests *store.GuestCartStore
	Logger *zap.Logger
}

// NewGuestCartController creates a new GuestCartController
func NewGuestCartController(guests *store.GuestCartStore, logger *zap.Logger) *GuestCartController {
	return &GuestCartController{Guests: guests, Logger: logger}
}

type guestAddRequest struct {
	GuestID string `json:"guest_id"`
	models.CartItem
}

type guestCartResponse struct {
	GuestID string            `json:"guest_id"`
	Items   []models.CartItem `json:"items"`
	Count   int               `json:"count"`
}

func newGuestCartResponse(guestID string, items []models.CartItem) guestCartResponse {
	if items == nil {
		items = []models.CartItem{}
	}
	return guestCartResponse{GuestID: guestID, Items: items, Count: models.ItemCount(items)}
}

// AddItem adds a product snapshot to the guest cart, issuing a guest ID when
// the request carries none.
func (gc *GuestCartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req guestAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.ProductID == "" {
		writeMessage(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.GuestID == "" {
		req.GuestID = gc.Guests.NewGuestID()
	}

	items := gc.Guests.AddItem(req.GuestID, req.CartItem)
	writeJSON(w, http.StatusOK, newGuestCartResponse(req.GuestID, items))
}

// GetCart returns the guest's items
func (gc *GuestCartController) GetCart(w http.ResponseWriter, r *http.Request) {
	guestID := mux.Vars(r)["guest_id"]
	items := gc.Guests.Get(guestID)
	writeJSON(w, http.StatusOK, newGuestCartResponse(guestID, items))
}

// UpdateQuantity sets a guest cart line's quantity; 0 removes the line
func (gc *GuestCartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	guestID := mux.Vars(r)["guest_id"]

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.ProductID == "" {
		writeMessage(w, http.StatusBadRequest, "productId is required")
		return
	}

	items, err := gc.Guests.UpdateQuantity(guestID, req.ProductID, req.Quantity)
	if err != nil {
		writeStoreError(w, gc.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newGuestCartResponse(guestID, items))
}

// RemoveItem removes a line from the guest cart; absence is a no-op
func (gc *GuestCartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	guestID := mux.Vars(r)["guest_id"]

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.ProductID == "" {
		writeMessage(w, http.StatusBadRequest, "productId is required")
		return
	}

	items := gc.Guests.RemoveItem(guestID, req.ProductID)
	writeJSON(w, http.StatusOK, newGuestCartResponse(guestID, items))
}

// ClearCart empties the guest cart
func (gc *GuestCartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	guestID := mux.Vars(r)["guest_id"]
	gc.Guests.Clear(guestID)
	writeJSON(w, http.StatusOK, newGuestCartResponse(guestID, nil))
}
