package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog entry
type Product struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string              `bson:"name" json:"name"`
	Slug         string              `bson:"slug" json:"slug"`
	Description  string              `bson:"description" json:"description"`
	Price        float64             `bson:"price" json:"price"`
	CategoryID   *primitive.ObjectID `bson:"category_id,omitempty" json:"category_id,omitempty"`
	CollectionID *primitive.ObjectID `bson:"collection_id,omitempty" json:"collection_id,omitempty"`
	Images       []string            `bson:"images" json:"images"`
	Materials    []string            `bson:"materials" json:"materials"`
	InStock      bool                `bson:"in_stock" json:"in_stock"`
	Featured     bool                `bson:"featured" json:"featured"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`
}

// Snapshot copies the fields the cart stores at add-to-cart time. The cart
// keeps this copy and never re-reads the catalog for display.
func (p Product) Snapshot(quantity int) CartItem {
	return CartItem{
		ProductID:   p.ID.Hex(),
		Name:        p.Name,
		Price:       p.Price,
		Images:      p.Images,
		Description: p.Description,
		Materials:   p.Materials,
		Slug:        p.Slug,
		Quantity:    quantity,
	}
}
