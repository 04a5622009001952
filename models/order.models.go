package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus enumerates the order lifecycle. New orders always start pending.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known lifecycle states.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the immutable order header. Customer and shipping fields are a
// snapshot captured at checkout; orders are addressed by customer_email,
// not by a user reference, so guest orders and account orders look alike.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CustomerName    string             `bson:"customer_name" json:"customer_name"`
	CustomerEmail   string             `bson:"customer_email" json:"customer_email"`
	CustomerPhone   string             `bson:"customer_phone" json:"customer_phone"`
	ShippingAddress string             `bson:"shipping_address" json:"shipping_address"`
	City            string             `bson:"city" json:"city"`
	PostalCode      string             `bson:"postal_code" json:"postal_code"`
	Country         string             `bson:"country" json:"country"`
	TotalAmount     float64            `bson:"total_amount" json:"total_amount"`
	Status          OrderStatus        `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// OrderItem is one line of an order, owned exclusively by its order. Product
// fields are a snapshot independent of later catalog changes; subtotal is
// computed by the caller as product_price * quantity and stored as given.
type OrderItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID      primitive.ObjectID `bson:"order_id" json:"order_id"`
	ProductID    string             `bson:"product_id" json:"product_id"`
	ProductName  string             `bson:"product_name" json:"product_name"`
	ProductPrice float64            `bson:"product_price" json:"product_price"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Subtotal     float64            `bson:"subtotal" json:"subtotal"`
}

// OrderTotal computes the header total: the sum of line subtotals plus the
// flat shipping fee. Enforced once at creation, never revalidated after.
func OrderTotal(items []OrderItem, shippingFee float64) float64 {
	total := shippingFee
	for _, it := range items {
		total += it.Subtotal
	}
	return total
}

// OrderStats summarizes a customer's order history.
type OrderStats struct {
	TotalOrders      int     `json:"totalOrders"`
	PendingOrders    int     `json:"pendingOrders"`
	ProcessingOrders int     `json:"processingOrders"`
	ShippedOrders    int     `json:"shippedOrders"`
	DeliveredOrders  int     `json:"deliveredOrders"`
	CancelledOrders  int     `json:"cancelledOrders"`
	TotalSpent       float64 `json:"totalSpent"`
}

// SummarizeOrders tallies per-status counts and total spend. Cancelled orders
// are counted but excluded from the spend figure.
func SummarizeOrders(orders []Order) OrderStats {
	stats := OrderStats{TotalOrders: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case OrderStatusPending:
			stats.PendingOrders++
		case OrderStatusProcessing:
			stats.ProcessingOrders++
		case OrderStatusShipped:
			stats.ShippedOrders++
		case OrderStatusDelivered:
			stats.DeliveredOrders++
		case OrderStatusCancelled:
			stats.CancelledOrders++
		}
		if o.Status != OrderStatusCancelled {
			stats.TotalSpent += o.TotalAmount
		}
	}
	return stats
}
