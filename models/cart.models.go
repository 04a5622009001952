package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one product-quantity line in a cart. The catalog fields are a
// snapshot taken at add-to-cart time; they are never re-fetched afterwards.
// ProductID is kept as a string so guest/local-only products can be carried
// alongside catalog entries.
type CartItem struct {
	ProductID   string   `bson:"productId" json:"productId"`
	Name        string   `bson:"name" json:"name"`
	Price       float64  `bson:"price" json:"price"`
	Images      []string `bson:"images" json:"images"`
	Description string   `bson:"description" json:"description"`
	Materials   []string `bson:"materials" json:"materials"`
	Slug        string   `bson:"slug" json:"slug"`
	Quantity    int      `bson:"quantity" json:"quantity"`
}

// Cart is a registered user's shopping cart. One cart per user, enforced by
// a unique index on the user field.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// UpsertItem returns the item list with item applied: if a line with the same
// productId exists its quantity is incremented by item.Quantity, otherwise
// the item is appended. A non-positive quantity on the incoming item is
// treated as 1.
func UpsertItem(items []CartItem, item CartItem) []CartItem {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	out := make([]CartItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ProductID == item.ProductID {
			out[i].Quantity += item.Quantity
			return out
		}
	}
	return append(out, item)
}

// SetItemQuantity sets the line's quantity to an absolute value. Quantity 0
// removes the line. The second return value reports whether the line existed;
// callers introduce new lines through UpsertItem, not here.
func SetItemQuantity(items []CartItem, productID string, quantity int) ([]CartItem, bool) {
	if quantity == 0 {
		out, found := removeByID(items, productID)
		return out, found
	}
	out := make([]CartItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Quantity = quantity
			return out, true
		}
	}
	return out, false
}

// RemoveItem deletes the matching line. Removing an absent productId is a
// no-op, not an error.
func RemoveItem(items []CartItem, productID string) []CartItem {
	out, _ := removeByID(items, productID)
	return out
}

func removeByID(items []CartItem, productID string) ([]CartItem, bool) {
	out := make([]CartItem, 0, len(items))
	found := false
	for _, it := range items {
		if it.ProductID == productID {
			found = true
			continue
		}
		out = append(out, it)
	}
	return out, found
}

// MergeItems folds guest-cart lines into the server cart's lines: quantities
// are summed for lines sharing a productId, guest-only lines are appended.
// Server line order is preserved; the result does not depend on the guest
// lines' iteration order beyond the ordering of appended new lines.
func MergeItems(server, guest []CartItem) []CartItem {
	out := make([]CartItem, len(server))
	copy(out, server)
	for _, g := range guest {
		out = UpsertItem(out, g)
	}
	return out
}

// ItemCount is the total quantity across all lines.
func ItemCount(items []CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
