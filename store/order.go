package store

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"jewelry-commerce/models"
)

// CreateOrderInput carries the checkout snapshot. Item subtotals are computed
// by the caller; the store only sums them for the header total.
type CreateOrderInput struct {
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerPhone   string             `json:"customerPhone"`
	ShippingAddress string             `json:"shippingAddress"`
	City            string             `json:"city"`
	PostalCode      string             `json:"postalCode"`
	Country         string             `json:"country"`
	Items           []models.OrderItem `json:"items"`
}

// Validate checks the required checkout fields. Name, email, address and a
// non-empty item list are mandatory; the rest of the shipping fields are not.
func (in *CreateOrderInput) Validate() error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return &InvalidOrderError{Field: "customerName"}
	}
	if strings.TrimSpace(in.CustomerEmail) == "" {
		return &InvalidOrderError{Field: "customerEmail"}
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return &InvalidOrderError{Field: "shippingAddress"}
	}
	if len(in.Items) == 0 {
		return &InvalidOrderError{Field: "items"}
	}
	return nil
}

// OrderStore converts carts into durable Order + OrderItem records and
// resolves them later. Orders are linked to accounts only by customer email.
type OrderStore struct {
	client      *mongo.Client
	orders      *mongo.Collection
	items       *mongo.Collection
	shippingFee float64
	logger      *zap.Logger
}

// NewOrderStore creates an OrderStore over the "orders" and "order_items"
// collections. shippingFee is the flat fee added to every order total.
func NewOrderStore(client *mongo.Client, db *mongo.Database, shippingFee float64, logger *zap.Logger) *OrderStore {
	return &OrderStore{
		client:      client,
		orders:      db.Collection("orders"),
		items:       db.Collection("order_items"),
		shippingFee: shippingFee,
		logger:      logger,
	}
}

// ShippingFee reports the flat fee included in order totals.
func (s *OrderStore) ShippingFee() float64 {
	return s.shippingFee
}

// Create validates the input and persists the order header plus its item
// rows in one transaction, so a timeout can never leave an orphaned header.
// The new order always starts pending. The caller's cart is untouched;
// clearing it is the caller's job, after this returns successfully.
func (s *OrderStore) Create(ctx context.Context, in CreateOrderInput) (primitive.ObjectID, error) {
	if err := in.Validate(); err != nil {
		return primitive.NilObjectID, err
	}

	order := models.Order{
		CustomerName:    in.CustomerName,
		CustomerEmail:   strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
		CustomerPhone:   in.CustomerPhone,
		ShippingAddress: in.ShippingAddress,
		City:            in.City,
		PostalCode:      in.PostalCode,
		Country:         in.Country,
		TotalAmount:     models.OrderTotal(in.Items, s.shippingFee),
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now(),
	}

	session, err := s.client.StartSession()
	if err != nil {
		return primitive.NilObjectID, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := s.orders.InsertOne(sc, order)
		if err != nil {
			return nil, err
		}
		orderID := res.InsertedID.(primitive.ObjectID)

		docs := make([]interface{}, len(in.Items))
		for i, item := range in.Items {
			item.ID = primitive.NilObjectID
			item.OrderID = orderID
			docs[i] = item
		}
		if _, err := s.items.InsertMany(sc, docs); err != nil {
			return nil, err
		}
		return orderID, nil
	})
	if err != nil {
		return primitive.NilObjectID, err
	}

	orderID := result.(primitive.ObjectID)
	s.logger.Info("order created",
		zap.String("order_id", orderID.Hex()),
		zap.String("customer_email", order.CustomerEmail),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("lines", len(in.Items)))
	return orderID, nil
}

// GetByID resolves the order header together with its item rows, in the
// order they were submitted. When requesterEmail is non-empty it must match
// the order's customer email, otherwise ErrUnauthorized — ownership is
// checked here on the single fetch, not only on listings.
func (s *OrderStore) GetByID(ctx context.Context, id primitive.ObjectID, requesterEmail string) (*models.Order, []models.OrderItem, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if requesterEmail != "" && !strings.EqualFold(order.CustomerEmail, requesterEmail) {
		return nil, nil, ErrUnauthorized
	}

	cursor, err := s.items.Find(ctx, bson.M{"order_id": id},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, nil, err
	}
	defer cursor.Close(ctx)

	items := []models.OrderItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, nil, err
	}
	return &order, items, nil
}

// ListByEmail returns all orders whose stored customer email matches the
// account email, most recent first. This is the weak account linkage: guest
// orders placed under the same email show up too.
func (s *OrderStore) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	cursor, err := s.orders.Find(ctx,
		bson.M{"customer_email": strings.ToLower(strings.TrimSpace(email))},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// StatsByEmail summarizes the customer's order history.
func (s *OrderStore) StatsByEmail(ctx context.Context, email string) (models.OrderStats, error) {
	orders, err := s.ListByEmail(ctx, email)
	if err != nil {
		return models.OrderStats{}, err
	}
	return models.SummarizeOrders(orders), nil
}

// UpdateStatus moves an order to a new lifecycle state (admin operation).
func (s *OrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	if !models.ValidOrderStatus(status) {
		return ErrInvalidStatus
	}
	res, err := s.orders.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
