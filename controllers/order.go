package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"jewelry-commerce/middleware"
	"jewelry-commerce/models"
	"jewelry-commerce/store"
	"jewelry-commerce/utils"
)

// OrderController handles order placement and history. Placing an order does
// not clear any cart; the client clears its cart only after a successful
// response, so a failed order never loses cart contents.
type OrderController struct {
	Orders       *store.OrderStore
	EmailService *utils.EmailService
	Logger       *zap.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(orders *store.OrderStore, emailService *utils.EmailService, logger *zap.Logger) *OrderController {
	return &OrderController{Orders: orders, EmailService: emailService, Logger: logger}
}

// CreateOrder persists an order header and its item rows. Open to guests;
// the customer snapshot in the body is the only identity the order keeps.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input store.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	orderID, err := oc.Orders.Create(r.Context(), input)
	if err != nil {
		writeStoreError(w, oc.Logger, err)
		return
	}

	total := models.OrderTotal(input.Items, oc.Orders.ShippingFee())
	go func(email, name, id string, amount float64) {
		if err := oc.EmailService.SendOrderConfirmationEmail(email, name, id, amount); err != nil {
			oc.Logger.Warn("order confirmation email failed",
				zap.String("order_id", id), zap.Error(err))
		}
	}(input.CustomerEmail, input.CustomerName, orderID.Hex(), total)

	writeJSON(w, http.StatusCreated, map[string]string{"id": orderID.Hex()})
}

// GetOrder returns an order header joined with its item rows. Ownership is
// checked against the authenticated email even when the order ID is known.
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, items, err := oc.Orders.GetByID(r.Context(), orderID, claims.Email)
	if err != nil {
		writeStoreError(w, oc.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order": order,
		"items": items,
	})
}

// GetUserOrders lists the authenticated user's orders, most recent first.
// Matching is by customer email, so guest orders under the same email are
// included.
func (oc *OrderController) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orders, err := oc.Orders.ListByEmail(r.Context(), claims.Email)
	if err != nil {
		writeStoreError(w, oc.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetOrderStats summarizes the authenticated user's order history
func (oc *OrderController) GetOrderStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := oc.Orders.StatsByEmail(r.Context(), claims.Email)
	if err != nil {
		writeStoreError(w, oc.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type statusUpdateRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateOrderStatus moves an order to a new lifecycle state (admin only)
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := oc.Orders.UpdateStatus(r.Context(), orderID, req.Status); err != nil {
		writeStoreError(w, oc.Logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Order status updated")
}
